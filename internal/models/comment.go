package models

import "time"

type Comment struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Text     string    `gorm:"size:2048;not null"`
	ItemID   int64     `gorm:"index;not null"`
	Item     Item      `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID int64     `gorm:"index;not null"`
	Author   User      `gorm:"constraint:OnDelete:CASCADE"`
	Created  time.Time `gorm:"index;not null"`
}

func (Comment) TableName() string { return "comments" }

type CommentDto struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// CommentToDto expects Author to be loaded.
func CommentToDto(c Comment) CommentDto {
	return CommentDto{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.Author.Name,
		Created:    c.Created,
	}
}

func CommentFromDto(d CommentDto, item Item, author User, created time.Time) Comment {
	return Comment{
		Text:     d.Text,
		ItemID:   item.ID,
		Item:     item,
		AuthorID: author.ID,
		Author:   author,
		Created:  created.UTC(),
	}
}

func CommentsToDto(comments []Comment) []CommentDto {
	out := make([]CommentDto, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentToDto(c))
	}
	return out
}
