package simpledesktops

// Result Structs -- server responses

// CatalogPage is one page of results from the desktops endpoint
type CatalogPage struct {
	Metadata PageMetadata   `json:"meta"`
	Entries  []CatalogEntry `json:"objects"`
}

// PageMetadata holds the paging information returned with every page
type PageMetadata struct {
	Limit      uint32  `json:"limit"`
	Next       *string `json:"next"`
	Offset     uint32  `json:"offset"`
	Previous   *string `json:"previous"`
	TotalCount uint32  `json:"total_count"`
}

// CatalogEntry information about a given wallpaper
type CatalogEntry struct {
	Creator      Creator `json:"creator"`
	ID           string  `json:"id"`
	ThumbnailURL string  `json:"iphone_thumb"`
	Permalink    string  `json:"permalink"`
	Title        string  `json:"title"`
	ImageURL     string  `json:"url"`
}

// Creator of a wallpaper; every field may be null
type Creator struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	URL   *string `json:"url"`
}

// DownloadedWallpaper is a wallpaper present in the local cache
type DownloadedWallpaper struct {
	Path   string
	Entry  CatalogEntry
	Cached bool // true when the file already existed
}
