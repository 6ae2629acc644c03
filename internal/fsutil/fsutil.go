package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// IsDirEmpty renvoie true si le répertoire spécifié par path est vide, false sinon.
func IsDirEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}

	// Ouvre le répertoire
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// Lit au plus un nom de fichier dans le répertoire
	_, err = f.Readdirnames(1)
	if err == io.EOF {
		// Pas d'entrée trouvée : dossier vide
		return true, nil
	}
	if err != nil {
		// Erreur d'accès au contenu
		return false, err
	}
	// Au moins une entrée existante → dossier non vide
	return false, nil
}

// FindMatchingFiles retourne les fichiers du répertoire path qui
// correspondent à l'un des motifs fournis dans patterns.
// - patterns utilise la syntaxe de filepath.Match/glob (ex: "abc*.vtt").
// - La recherche n'est pas récursive ; elle cherche uniquement dans path.
// Un répertoire inexistant donne une liste vide sans erreur.
func FindMatchingFiles(path string, patterns []string) ([]string, error) {
	// si le répertoire n'existe pas -> pas de fichiers correspondants
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("path exists but is not a directory")
	}

	var found []string
	for _, pat := range patterns {
		matches, err := filepath.Glob(filepath.Join(path, pat))
		if err != nil {
			// généralement filepath.Glob ne retourne pas d'erreur sauf motif invalide
			return nil, err
		}
		found = append(found, matches...)
	}
	return found, nil
}

// WriteFileAtomic écrit data dans destPath de manière atomique : écriture dans
// un fichier temporaire du même répertoire puis os.Rename(tmp -> dest).
// Crée les répertoires parents si nécessaire.
//
// destPath : chemin complet vers le fichier cible.
// data : contenu à écrire.
// perm : permissions POSIX (ex: 0o644).
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if dir == "" {
		dir = "."
	}
	// repertoire parent existe ?
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	// creation fichier temp
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// cleanup si échec
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// écriture
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	// best-effort : garantit que les données sont physiquement stockées
	_ = tmp.Sync()

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// set permission (best-effort)
	_ = os.Chmod(tmpName, perm)

	// rename
	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}
