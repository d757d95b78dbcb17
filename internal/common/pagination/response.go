package pagination

// Metadata describes where a page sits in the full result set.
type Metadata struct {
	Total   int64 `json:"total"`
	Skip    int   `json:"skip"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

// NewMetadata computes HasMore from the window and total.
func NewMetadata(p Params, total int64) Metadata {
	return Metadata{
		Total:   total,
		Skip:    p.Skip,
		Limit:   p.Limit,
		HasMore: int64(p.Skip)+int64(p.Limit) < total,
	}
}

// Response is a page of items with its metadata.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

// NewResponse builds a Response; a nil slice is encoded as [].
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{Data: data, Pagination: metadata}
}
