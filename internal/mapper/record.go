package mapper

// RawRecord is the structured metadata document the fetch backend writes for
// one identifier. Field names follow the backend's info-json layout.
type RawRecord struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	UploadDate    string `json:"upload_date"`
	Uploader      string `json:"uploader"`
	ChannelID     string `json:"channel_id"`
	Track         string `json:"track"`
	Artist        string `json:"artist"`
	Album         string `json:"album"`
	PlaylistTitle string `json:"playlist_title"`
}
