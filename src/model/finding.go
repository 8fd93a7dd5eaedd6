package model

// BotID identifies the tool that produced a finding in the fleet context
type BotID string

// BotSustainabot is this tool's identity
const BotSustainabot BotID = "sustainabot"

// FindingSeverity is the fleet's coarse severity taxonomy
type FindingSeverity string

const (
	FindingWarning FindingSeverity = "warning"
	FindingInfo    FindingSeverity = "info"
)

// Finding is a structured statement published to the fleet context
type Finding struct {
	Bot      BotID           `json:"bot"`
	ID       string          `json:"id"`
	Severity FindingSeverity `json:"severity"`
	Message  string          `json:"message"`
}

// NewFinding creates a finding attributed to this bot
func NewFinding(id string, severity FindingSeverity, message string) Finding {
	return Finding{
		Bot:      BotSustainabot,
		ID:       id,
		Severity: severity,
		Message:  message,
	}
}
