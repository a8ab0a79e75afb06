package printer

import (
	"encoding/json"
	"io"
)

// jsonHeap is the JSON rendering of a heap.
type jsonHeap struct {
	Size         int          `json:"size"`
	PrologueSize int          `json:"prologue_size"`
	FirstBlock   int          `json:"first_block"`
	Blocks       []BlockInfo  `json:"blocks"`
	Buckets      []BucketInfo `json:"buckets,omitempty"`
}

// WriteJSON writes the heap as an indented JSON document.
func WriteJSON(w io.Writer, h Heap) error {
	data := h.Heap()
	l := h.Layout()
	doc := jsonHeap{
		Size:         len(data),
		PrologueSize: l.PrologueSize,
		FirstBlock:   l.FirstBlock,
		Blocks:       walk(data, l),
		Buckets:      buckets(data, l),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
