// Package notify fournit le consommateur aval des alertes fraîchement générées.
// L'implémentation actuelle journalise; le remplacement par un vrai canal de
// notification (push, e-mail) se fait derrière le même port.
package notify

import (
	"context"

	"github.com/ramzib/dukan-pos/internal/application/alerts"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/pkg/logger"
)

var _ alerts.Notifier = (*LogNotifier)(nil)

// LogNotifier journalise les alertes critiques insérées lors d'une régénération.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construit le notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyNewAlerts trace un résumé du lot et le détail des critiques.
func (n *LogNotifier) NotifyNewAlerts(_ context.Context, userID string, batch []entity.Alert) {
	critical := 0
	for i := range batch {
		if batch[i].Severity == entity.SeverityCritical {
			critical++
			n.log.Warn().
				Str("user_id", userID).
				Str("type", batch[i].Type).
				Str("title", batch[i].Title).
				Msg(batch[i].Message)
		}
	}
	n.log.Info().
		Str("user_id", userID).
		Int("alerts", len(batch)).
		Int("critical", critical).
		Msg("alertes régénérées")
}
