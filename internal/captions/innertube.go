package captions

// Constantes et types bas niveau de l'API InnerTube de YouTube.
// La logique (choix de piste, téléchargement) est dans client.go et track.go.

const (
	defaultPlayerURL = "https://www.youtube.com/youtubei/v1/player"
	defaultWatchURL  = "https://www.youtube.com/watch?v="

	androidVersion = "20.10.38"
	androidUA      = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"

	// marqueur du JSON de lecteur dans le HTML de la page de visionnage
	playerResponseMarker = "ytInitialPlayerResponse = "

	// kind d'une piste générée par reconnaissance vocale
	kindASR = "asr"
)

// --- requête /player (client ANDROID) ---

type playerReq struct {
	VideoID        string    `json:"videoId"`
	Context        playerCtx `json:"context"`
	RacyCheckOk    bool      `json:"racyCheckOk"`
	ContentCheckOk bool      `json:"contentCheckOk"`
}

type playerCtx struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

func newAndroidPlayerReq(videoID string) playerReq {
	return playerReq{
		VideoID: videoID,
		Context: playerCtx{
			Client: playerClient{
				ClientName:        "ANDROID",
				ClientVersion:     androidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	}
}

// --- réponse du lecteur (commune à /player et à ytInitialPlayerResponse) ---

type playerResp struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-généré
	Translatable bool   `json:"isTranslatable"`
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (c captionTrack) displayName() string {
	if c.Name.SimpleText != "" {
		return c.Name.SimpleText
	}
	if len(c.Name.Runs) > 0 {
		return c.Name.Runs[0].Text
	}
	return c.LanguageCode
}
