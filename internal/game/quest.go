// Package game holds the shared quest and inventory entities owned by the
// store aggregate. Templates for both live in internal/catalog.
package game

// QuestStatus is the lifecycle state of a quest.
type QuestStatus string

const (
	QuestActive    QuestStatus = "Active"
	QuestCompleted QuestStatus = "Completed"
)

// Quest is an entry in the active quest list. Progress is monotonically
// increasing; the status flips to Completed exactly once when progress first
// reaches 100.
type Quest struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	MoralChoice string      `json:"moralChoice,omitempty"`
	Outcomes    string      `json:"outcomes,omitempty"`
	Status      QuestStatus `json:"status"`
	Progress    int         `json:"progress"`
	Reward      QuestReward `json:"reward,omitempty"`
}

// QuestReward is granted once, when the quest completes.
type QuestReward struct {
	XP       int    `json:"xp,omitempty"`
	Currency int    `json:"currency,omitempty"`
	ItemID   string `json:"itemId,omitempty"`
}

// Advance applies a progress delta, clamping at 100. It returns true exactly
// once: on the call that transitions the quest to Completed.
func (q *Quest) Advance(delta int) (completed bool) {
	if q.Status == QuestCompleted {
		return false
	}
	q.Progress += delta
	if q.Progress > 100 {
		q.Progress = 100
	}
	if q.Progress < 0 {
		q.Progress = 0
	}
	if q.Progress >= 100 {
		q.Status = QuestCompleted
		return true
	}
	return false
}
