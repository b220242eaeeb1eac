package comment

import "time"

// MaxTextLength caps comment text, matching the store-level constraint.
const MaxTextLength = 1000

// Comment is a note attached to a task. TaskID and UserID are immutable
// after creation; IsEdited flips to true on any text update.
type Comment struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	TaskID    string    `gorm:"size:36;not null;index:idx_comments_task_created" json:"taskId"`
	UserID    string    `gorm:"size:36;not null" json:"userId"`
	Text      string    `gorm:"size:1000;not null" json:"text"`
	IsEdited  bool      `gorm:"not null;default:false" json:"isEdited"`
	CreatedAt time.Time `gorm:"index:idx_comments_task_created" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Comment model.
func (Comment) TableName() string {
	return "comments"
}

// AuthoredBy reports whether the comment was written by the given user.
func (c *Comment) AuthoredBy(userID string) bool {
	return c.UserID == userID
}
