package notify

import "go.uber.org/zap"

// Notifier sends user-facing notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	// ConfirmationEmail sends the registration confirmation token.
	ConfirmationEmail(to, token string) error
	// OrderPlaced tells the buyer their basket became an order.
	OrderPlaced(to string) error
}

// logNotifier writes notifications to the log instead of delivering them.
// Used when SMTP is not configured.
type logNotifier struct{ log *zap.Logger }

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) ConfirmationEmail(to, token string) error {
	n.log.Info("confirmation email suppressed, SMTP not configured",
		zap.String("to", to), zap.String("token", token))
	return nil
}

func (n *logNotifier) OrderPlaced(to string) error {
	n.log.Info("order notification suppressed, SMTP not configured",
		zap.String("to", to))
	return nil
}
