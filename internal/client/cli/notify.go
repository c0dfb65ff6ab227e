package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gophaccount/internal/client/models"
)

// Notifier prints notices, one per line. It is safe for concurrent use: the
// lockout ticker reports from its own goroutine.
type Notifier struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[models.NoticeLevel]lipgloss.Style
}

func NewNotifier(w io.Writer) *Notifier {
	r := lipgloss.NewRenderer(w)
	badge := r.NewStyle().Bold(true).Padding(0, 1)
	return &Notifier{
		w: w,
		styles: map[models.NoticeLevel]lipgloss.Style{
			models.NoticeSuccess: badge.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
			models.NoticeError:   badge.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9")),
			models.NoticeInfo:    badge.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")),
		},
	}
}

var noticeLabels = map[models.NoticeLevel]string{
	models.NoticeSuccess: "OK",
	models.NoticeError:   "ERROR",
	models.NoticeInfo:    "INFO",
}

func (n *Notifier) Notify(notice models.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	label := n.styles[notice.Level].Render(noticeLabels[notice.Level])
	fmt.Fprintf(n.w, "%s %s\n", label, notice.Message)
}
