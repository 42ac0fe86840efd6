package manager

import "time"

// DefaultNoticeTTL is how long a transient message stays visible.
const DefaultNoticeTTL = 3 * time.Second

// NoticeKind is the flavor of a transient message.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is the single active transient message. A new notice pre-empts
// the current one and restarts the dismiss timer.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Notify replaces the active notice and restarts the auto-dismiss timer.
func (m *Manager) Notify(kind NoticeKind, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.noticeTimer != nil {
		m.noticeTimer.Stop()
	}
	n := &Notice{Kind: kind, Text: text}
	m.notice = n
	m.noticeTimer = time.AfterFunc(m.noticeTTL, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Only dismiss if a newer notice has not replaced this one.
		if m.notice == n {
			m.notice = nil
		}
	})
}
