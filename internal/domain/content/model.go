package content

import "time"

// ConstMessage — именованный текст, который бот отдаёт по запросу
// и хранит бессрочно.
type ConstMessage struct {
	ID   int64
	Name string
	Text string
}

// TempMessage — то же самое, но с датой, после которой запись
// вычищается планировщиком.
type TempMessage struct {
	ID        int64
	Name      string
	Text      string
	ExpiresAt time.Time
}
