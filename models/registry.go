package models

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Courtroom{},
		&Case{},
		&Hearing{},
		&CaseTimeline{},
		&Document{},
		&Task{},
		&CaseNote{},
		&Notification{},
		&Message{},
	}
}
