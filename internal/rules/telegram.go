package rules

import (
	"strings"

	"github.com/nao1215/profilescan/internal/model"
)

// telegramPatterns are the funnel markers searched in bios: direct links,
// the platform name, deep links, and group invite fragments.
var telegramPatterns = []string{"t.me/", "telegram", "tg://", "joinchat/"}

// TelegramDetector flags bios that funnel readers into Telegram, the usual
// next hop of coordinated scam groups.
type TelegramDetector struct {
	patterns []string
}

// NewTelegramDetector creates a TelegramDetector with the built-in markers
// plus any extensions.
func NewTelegramDetector(extra []string) *TelegramDetector {
	return &TelegramDetector{patterns: appendLowered(telegramPatterns, extra)}
}

// Name returns the check identifier.
func (d *TelegramDetector) Name() string {
	return string(model.FlagTelegramPromotion)
}

// Detect searches the bio for Telegram funnel markers.
func (d *TelegramDetector) Detect(record *model.ProfileRecord) *model.RedFlag {
	if !containsAny(strings.ToLower(record.Bio), d.patterns) {
		return nil
	}

	flag := model.NewRedFlag(model.FlagTelegramPromotion,
		"Telegram link found in bio (common for coordinated groups)")
	return &flag
}

// Ensure TelegramDetector implements Detector.
var _ Detector = (*TelegramDetector)(nil)
