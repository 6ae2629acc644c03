package model

import (
	"fmt"
	"strings"
)

// SubSource représente la provenance d'une piste de sous-titres.
// automatic = généré automatiquement par Youtube
// manual = fourni par l'auteur de la vidéo
type SubSource string

const (
	SubSourceUnknown    SubSource = "unknown"
	SubSourceAutomatic  SubSource = "automatic"
	SubSourceManual     SubSource = "manual"
	SubSourceTranslated SubSource = "translated"
)

func (s SubSource) String() string {
	switch s {
	case SubSourceAutomatic:
		return "auto captions"
	case SubSourceManual:
		return "manual subtitles"
	case SubSourceTranslated:
		return "translated subtitles"
	default:
		return "unknown subtitles"
	}
}

// VideoMeta regroupe les métadonnées utiles d'une vidéo (API Data v3).
type VideoMeta struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	Title     string `json:"title"`
}

func (m VideoMeta) String() string {
	return fmt.Sprintf("VideoMeta[ID=%s, Channel=%s, Title=%q]", m.ID, m.ChannelID, m.Title)
}

// CommentKind distingue un commentaire de premier niveau d'une réponse.
type CommentKind string

const (
	CommentTopLevel CommentKind = "comment"
	CommentReply    CommentKind = "reply"
)

// Comment est une ligne de l'export des commentaires.
type Comment struct {
	Kind        CommentKind
	Author      string
	Text        string
	Likes       int64
	PublishedAt string
	ParentID    string // vide pour un commentaire de premier niveau
	IsOwner     bool   // auteur == chaîne de la vidéo
}

// Pretty retourne une fiche multi-lignes simple.
func (m VideoMeta) Pretty() string {
	var b strings.Builder
	b.WriteString("Vidéo:\n")
	fmt.Fprintf(&b, "  ID      : %s\n", m.ID)
	fmt.Fprintf(&b, "  Titre   : %q\n", m.Title)
	fmt.Fprintf(&b, "  Chaîne  : %s\n", m.ChannelID)
	return b.String()
}
