package project

type Project struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   int64
}
