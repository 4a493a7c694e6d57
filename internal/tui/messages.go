package tui

import (
	"github.com/Veraticus/product-monitor/internal/model"
)

// Data loading messages. Each fetch reports on its own.
type bucketsLoadedMsg struct {
	err     error
	buckets model.Buckets
}

type productsLoadedMsg struct {
	err      error
	products []model.Product
}

// Write results. The local change is applied only when err is nil.
type ignoredMsg struct {
	err  error
	code string
}

type reclassifiedMsg struct {
	err    error
	code   string
	bucket string
}

// NoticeKind styles the status line.
type NoticeKind int

// Notice kinds.
const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a one-line message shown under the table until the next action.
type Notice struct {
	Text string
	Kind NoticeKind
}
