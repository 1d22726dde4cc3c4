package remote

// Wire types for the engram REST API. Response shapes decode directly into
// the types in pkg/memory; only request bodies need dedicated structs.

type storeRequest struct {
	Content    string   `json:"content"`
	Type       string   `json:"type"`
	Importance int      `json:"importance"`
	Tags       []string `json:"tags"`
	Namespace  string   `json:"namespace"`
}

type searchRequest struct {
	Query     string `json:"query"`
	Limit     int    `json:"limit"`
	Namespace string `json:"namespace"`
}

type recallRequest struct {
	Limit         int    `json:"limit"`
	MinImportance int    `json:"min_importance"`
	Namespace     string `json:"namespace"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}
