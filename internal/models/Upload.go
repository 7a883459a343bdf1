package models

// Upload describes an image stored under the public uploads directory.
type Upload struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}
