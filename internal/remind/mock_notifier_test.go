package remind

import "github.com/circadianhq/circadian/internal/server"

type mockNotifier struct {
	sent [][]server.AnchorView
}

func (m *mockNotifier) SendReminder(anchors []server.AnchorView) error {
	m.sent = append(m.sent, anchors)
	return nil
}

var _ Notifier = (*mockNotifier)(nil)
