package app

import "sync"

// QRBox hands QR codes from the share capability to the UI. Show is called
// from the share goroutine; the model picks the code up when the share
// completes.
type QRBox struct {
	mu    sync.Mutex
	title string
	code  string
	ok    bool
}

// Show stores a code for display. It matches share.QRCapability.Show.
func (q *QRBox) Show(title, code string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.title, q.code, q.ok = title, code, true
}

func (q *QRBox) take() (title, code string, ok bool) {
	if q == nil {
		return "", "", false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	title, code, ok = q.title, q.code, q.ok
	q.title, q.code, q.ok = "", "", false
	return title, code, ok
}
