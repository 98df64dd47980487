package confluence

// Version is the version marker Confluence requires on page updates.
type Version struct {
	Number int `json:"number"`
}

// Storage is page body content in Confluence storage format (XHTML).
type Storage struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

// Body wraps the storage representation of a page body.
type Body struct {
	Storage Storage `json:"storage"`
}

// Space identifies the space a page belongs to.
type Space struct {
	Key string `json:"key"`
}

// Page is a Confluence content page.
type Page struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Title   string  `json:"title"`
	Space   *Space  `json:"space,omitempty"`
	Version Version `json:"version"`
	Body    Body    `json:"body"`
}

// pageList is a page of the content listing endpoint.
type pageList struct {
	Results []Page `json:"results"`
	Start   int    `json:"start"`
	Limit   int    `json:"limit"`
	Size    int    `json:"size"`
}
