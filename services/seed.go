package services

import (
	"fmt"
	"time"

	"legal_cms_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded account
const DemoPassword = "password123"

// SeedSummary reports how many rows of each table were seeded
type SeedSummary struct {
	Users         int64
	Courtrooms    int64
	Cases         int64
	Hearings      int64
	Timeline      int64
	Documents     int64
	Tasks         int64
	Notes         int64
	Notifications int64
	Messages      int64
}

// SeedIfEmpty loads the demo data set when the users table is empty
func SeedIfEmpty(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		zap.L().Info("users already present, skipping demo seed", zap.Int64("users", count))
		return false, nil
	}
	if _, err := SeedDemoData(db); err != nil {
		return false, err
	}
	return true, nil
}

// SeedDemoData wipes every table and loads the demo data set in a single
// transaction
func SeedDemoData(db *gorm.DB) (*SeedSummary, error) {
	hash, err := HashPassword(DemoPassword)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := clearTables(tx); err != nil {
			return err
		}
		return seedDemo(tx, hash)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed demo data: %w", err)
	}

	summary, err := countSeeded(db)
	if err != nil {
		return nil, err
	}
	zap.L().Info("demo data seeded",
		zap.Int64("users", summary.Users),
		zap.Int64("cases", summary.Cases),
		zap.Int64("hearings", summary.Hearings),
		zap.Int64("messages", summary.Messages),
	)
	return summary, nil
}

func clearTables(tx *gorm.DB) error {
	// children before parents
	tables := []interface{}{
		&models.Message{},
		&models.Notification{},
		&models.CaseNote{},
		&models.Task{},
		&models.Document{},
		&models.CaseTimeline{},
		&models.Hearing{},
		&models.Case{},
		&models.Courtroom{},
		&models.User{},
	}
	for _, t := range tables {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(t).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", t, err)
		}
	}
	return nil
}

func seedDemo(tx *gorm.DB, passwordHash string) error {
	// Users
	users := []models.User{
		{Name: "Rajesh Kumar", Email: "rajesh@example.com", Role: models.RolePublic,
			CitizenID: strPtr("CIT-2024-7842"), Phone: strPtr("9876543210")},
		{Name: "Adv. Priya Sharma", Email: "priya@example.com", Role: models.RoleAdvocate,
			BarCouncilID: strPtr("BCI/MAH/2019/4521"), Specialization: strPtr("Civil & Family Law"),
			Experience: strPtr("8 years"), Rating: 4.8, Phone: strPtr("9876543211")},
		{Name: "Court Admin", Email: "court@example.com", Role: models.RoleCourt,
			CourtName: strPtr("District Court, Mumbai"), Phone: strPtr("9876543212")},
		{Name: "Adv. Vikram Singh", Email: "vikram@example.com", Role: models.RoleAdvocate,
			BarCouncilID: strPtr("BCI/DEL/2015/3210"), Specialization: strPtr("Criminal Law"),
			Experience: strPtr("12 years"), Rating: 4.5, Phone: strPtr("9876543213")},
		{Name: "Meena Devi", Email: "meena@example.com", Role: models.RolePublic,
			CitizenID: strPtr("CIT-2024-1234"), Phone: strPtr("9876543214")},
		{Name: "Adv. Anita Desai", Email: "anita@example.com", Role: models.RoleAdvocate,
			BarCouncilID: strPtr("BCI/KAR/2017/5678"), Specialization: strPtr("Consumer Law"),
			Experience: strPtr("6 years"), Rating: 4.2, Phone: strPtr("9876543215")},
	}
	for i := range users {
		users[i].Password = passwordHash
	}
	if err := tx.Create(&users).Error; err != nil {
		return fmt.Errorf("users: %w", err)
	}
	rajesh, priya, court, vikram, meena, anita := &users[0], &users[1], &users[2], &users[3], &users[4], &users[5]

	// Courtrooms
	courtrooms := []models.Courtroom{
		{Name: "Court Room 1", Judge: strPtr("Justice R. Krishnan"), Status: models.CourtroomStatusInSession,
			CurrentCase: strPtr("CIV-2024-1842"), CaseTitle: strPtr("Property Dispute - Sharma vs Patel"),
			StartTime: strPtr("10:00 AM"), CaseType: strPtr("Civil")},
		{Name: "Court Room 2", Judge: strPtr("Justice S. Mehta"), Status: models.CourtroomStatusAvailable},
		{Name: "Court Room 3", Judge: strPtr("Justice P. Iyer"), Status: models.CourtroomStatusInSession,
			CurrentCase: strPtr("CRM-2024-0923"), CaseTitle: strPtr("State vs Rajan Kumar"),
			StartTime: strPtr("11:00 AM"), CaseType: strPtr("Criminal")},
		{Name: "Court Room 4", Judge: strPtr("Justice A. Khan"), Status: models.CourtroomStatusRecess,
			CurrentCase: strPtr("FAM-2024-0445"), CaseTitle: strPtr("Divorce Proceedings - Gupta"),
			StartTime: strPtr("10:30 AM"), CaseType: strPtr("Family")},
		{Name: "Court Room 5", Judge: strPtr("Justice M. Reddy"), Status: models.CourtroomStatusAvailable},
		{Name: "Court Room 6", Judge: strPtr("Justice K. Pillai"), Status: models.CourtroomStatusInSession,
			CurrentCase: strPtr("WRT-2024-0267"), CaseTitle: strPtr("Writ Petition - Environmental"),
			StartTime: strPtr("10:15 AM"), CaseType: strPtr("Writ")},
		{Name: "Mediation Room", Judge: strPtr("Justice T. Das"), Status: models.CourtroomStatusInSession,
			CurrentCase: strPtr("CIV-2024-2341"), CaseTitle: strPtr("Mediation - Land Dispute"),
			StartTime: strPtr("09:30 AM"), CaseType: strPtr("Civil")},
		{Name: "MACT Hall", Judge: strPtr("Justice V. Nair"), Status: models.CourtroomStatusInSession,
			CurrentCase: strPtr("MACT-2024-0156"), CaseTitle: strPtr("Accident Claim - Kumar Family"),
			StartTime: strPtr("11:30 AM"), CaseType: strPtr("MACT")},
		{Name: "Family Court Hall", Judge: strPtr("Justice L. Bose"), Status: models.CourtroomStatusClosed},
		{Name: "Court Room 12", Judge: strPtr("Justice D. Sharma"), Status: models.CourtroomStatusInSession,
			CurrentCase: strPtr("CNS-2024-0891"), CaseTitle: strPtr("Consumer Fraud - Patel vs Electronics Ltd"),
			StartTime: strPtr("10:45 AM"), CaseType: strPtr("Consumer")},
	}
	if err := tx.Create(&courtrooms).Error; err != nil {
		return fmt.Errorf("courtrooms: %w", err)
	}
	roomIDs := make(map[string]uint, len(courtrooms))
	for _, r := range courtrooms {
		roomIDs[r.Name] = r.ID
	}

	// Cases
	type caseSeed struct {
		number, title, description, caseType, status, priority string
		petitioner, respondent                                 string
		petitionerUser                                         *models.User
		advocate                                               *models.User
		judge, room                                            string
		nextHearing                                            *time.Time
		filed                                                  time.Time
	}
	caseSeeds := []caseSeed{
		{"CIV-2024-1842", "Property Dispute - Sharma vs Patel",
			"Civil dispute regarding ownership of commercial property at MG Road, Mumbai.",
			"Civil", models.CaseStatusHearingScheduled, models.PriorityHigh,
			"Rajesh Kumar", "Patel Industries Ltd.", rajesh, priya, "Justice R. Krishnan", "Court Room 1",
			seedTime(2025, 2, 20, 10, 0), seedDate(2024, 3, 15)},
		{"CRM-2024-0923", "State vs Rajan Kumar - Theft Case",
			"Criminal case involving theft of valuable artifacts from the city museum.",
			"Criminal", models.CaseStatusInProgress, models.PriorityHigh,
			"State of Maharashtra", "Rajan Kumar", nil, vikram, "Justice P. Iyer", "Court Room 3",
			seedTime(2025, 2, 22, 11, 0), seedDate(2024, 6, 1)},
		{"FAM-2024-0445", "Gupta vs Gupta - Divorce Proceedings",
			"Mutual consent divorce with agreed terms on alimony and child custody.",
			"Family", models.CaseStatusUnderReview, models.PriorityMedium,
			"Meena Devi", "Suresh Gupta", meena, priya, "Justice A. Khan", "Court Room 4",
			seedTime(2025, 3, 5, 10, 30), seedDate(2024, 7, 20)},
		{"WRT-2024-0267", "Environmental Writ - River Pollution",
			"Public interest litigation on industrial pollution in Yamuna river basin.",
			"Writ", models.CaseStatusFiled, models.PriorityHigh,
			"Environmental Trust of India", "Industrial Board", nil, anita, "Justice K. Pillai", "Court Room 6",
			seedTime(2025, 2, 28, 10, 15), seedDate(2024, 9, 10)},
		{"CNS-2024-0891", "Consumer Fraud - Patel vs Electronics Ltd",
			"Consumer complaint regarding defective electronic goods and refund denial.",
			"Consumer", models.CaseStatusHearingScheduled, models.PriorityMedium,
			"Rajesh Kumar", "Super Electronics Ltd.", rajesh, anita, "Justice D. Sharma", "Court Room 12",
			seedTime(2025, 3, 10, 10, 45), seedDate(2024, 10, 5)},
		{"CIV-2024-2341", "Land Dispute - Village Boundary",
			"Dispute over agricultural land boundaries between two villages.",
			"Civil", models.CaseStatusJudgmentReserved, models.PriorityLow,
			"Village Panchayat A", "Village Panchayat B", nil, vikram, "Justice T. Das", "Mediation Room",
			nil, seedDate(2024, 4, 25)},
		{"CRM-2024-1150", "Cybercrime - Online Fraud Investigation",
			"Investigation into a large-scale online financial fraud operation.",
			"Criminal", models.CaseStatusInProgress, models.PriorityHigh,
			"State Cyber Cell", "Unknown Accused", nil, vikram, "Justice S. Mehta", "Court Room 2",
			seedTime(2025, 3, 15, 11, 0), seedDate(2024, 11, 1)},
		{"FAM-2025-0078", "Child Custody - Singh Family",
			"Contested custody case following divorce proceedings.",
			"Family", models.CaseStatusFiled, models.PriorityMedium,
			"Anjali Singh", "Ramesh Singh", nil, priya, "Justice L. Bose", "Family Court Hall",
			seedTime(2025, 3, 20, 10, 0), seedDate(2025, 1, 15)},
	}

	cases := make([]models.Case, len(caseSeeds))
	for i, s := range caseSeeds {
		c := models.Case{
			CaseNumber:    s.number,
			Title:         s.title,
			Description:   strPtr(s.description),
			CaseType:      s.caseType,
			Status:        s.status,
			Priority:      s.priority,
			Petitioner:    s.petitioner,
			Respondent:    s.respondent,
			AdvocateID:    &s.advocate.ID,
			Judge:         strPtr(s.judge),
			CourtRoomName: strPtr(s.room),
			NextHearing:   s.nextHearing,
			FilingDate:    s.filed,
		}
		if s.petitionerUser != nil {
			c.PetitionerID = &s.petitionerUser.ID
		}
		if id, ok := roomIDs[s.room]; ok {
			c.CourtroomID = &id
		}
		cases[i] = c
	}
	if err := tx.Omit("Advocate", "PetitionerUser", "Courtroom").Create(&cases).Error; err != nil {
		return fmt.Errorf("cases: %w", err)
	}

	// Hearings
	hearing := func(c int, day time.Time, kind, status, notes, location string, start, end *time.Time) models.Hearing {
		h := models.Hearing{
			CaseID:    cases[c].ID,
			Date:      day,
			Type:      kind,
			Status:    status,
			Location:  strPtr(location),
			StartTime: start,
			EndTime:   end,
		}
		if notes != "" {
			h.Notes = strPtr(notes)
		}
		return h
	}
	done, sched := models.HearingStatusCompleted, models.HearingStatusScheduled
	hearings := []models.Hearing{
		hearing(0, seedDate(2024, 5, 10), "First Hearing", done, "Case admitted. Respondent served notice.", "Court Room 1", nil, nil),
		hearing(0, seedDate(2024, 8, 15), "Arguments", done, "Petitioner presented property documents.", "Court Room 1", nil, nil),
		hearing(0, seedDate(2025, 2, 20), "Cross Examination", sched, "", "Court Room 1", seedTime(2025, 2, 20, 10, 0), seedTime(2025, 2, 20, 12, 0)),
		hearing(1, seedDate(2024, 7, 1), "Bail Hearing", done, "Bail denied. Accused remanded to custody.", "Court Room 3", nil, nil),
		hearing(1, seedDate(2025, 2, 22), "Evidence Presentation", sched, "", "Court Room 3", seedTime(2025, 2, 22, 11, 0), seedTime(2025, 2, 22, 13, 0)),
		hearing(2, seedDate(2024, 9, 5), "Mediation", done, "Parties agreed on terms in principle.", "Court Room 4", nil, nil),
		hearing(2, seedDate(2025, 3, 5), "Final Review", sched, "", "Court Room 4", seedTime(2025, 3, 5, 10, 30), seedTime(2025, 3, 5, 11, 30)),
		hearing(3, seedDate(2025, 2, 28), "First Hearing", sched, "", "Court Room 6", seedTime(2025, 2, 28, 10, 15), seedTime(2025, 2, 28, 11, 15)),
		hearing(4, seedDate(2024, 11, 15), "First Hearing", done, "Complaint noted. Respondent to file reply.", "Court Room 12", nil, nil),
		hearing(4, seedDate(2025, 3, 10), "Arguments", sched, "", "Court Room 12", seedTime(2025, 3, 10, 10, 45), seedTime(2025, 3, 10, 12, 0)),
	}
	if err := tx.Omit("Case").Create(&hearings).Error; err != nil {
		return fmt.Errorf("hearings: %w", err)
	}

	// Timeline
	entry := func(c int, day time.Time, event, description string) models.CaseTimeline {
		return models.CaseTimeline{CaseID: cases[c].ID, Date: day, Event: event, Description: strPtr(description)}
	}
	timeline := []models.CaseTimeline{
		entry(0, seedDate(2024, 3, 15), "Case Filed", "Case registered with Court Registry"),
		entry(0, seedDate(2024, 3, 20), "Advocate Assigned", "Adv. Priya Sharma assigned to the case"),
		entry(0, seedDate(2024, 5, 10), "First Hearing", "Case admitted, respondent served notice"),
		entry(0, seedDate(2024, 8, 15), "Document Submission", "Property documents submitted by petitioner"),
		entry(1, seedDate(2024, 6, 1), "FIR Registered", "Case filed based on museum theft FIR"),
		entry(1, seedDate(2024, 7, 1), "Bail Denied", "Bail application rejected by court"),
		entry(2, seedDate(2024, 7, 20), "Petition Filed", "Divorce petition filed by mutual consent"),
		entry(2, seedDate(2024, 9, 5), "Mediation", "Parties reached agreement on terms"),
	}
	if err := tx.Create(&timeline).Error; err != nil {
		return fmt.Errorf("timeline: %w", err)
	}

	// Documents
	doc := func(c int, uploader *models.User, title, docType, fileType, size string, verified bool) models.Document {
		return models.Document{
			CaseID:     cases[c].ID,
			UploadedBy: uploader.ID,
			Title:      title,
			DocType:    docType,
			FileType:   fileType,
			FileSize:   strPtr(size),
			Verified:   verified,
		}
	}
	documents := []models.Document{
		doc(0, priya, "Property Deed - MG Road", models.DocTypeDocument, "pdf", "2.4 MB", true),
		doc(0, priya, "Land Survey Map", models.DocTypeImage, "jpg", "5.1 MB", true),
		doc(0, priya, "Tax Receipts 2020-2024", models.DocTypeDocument, "pdf", "1.8 MB", false),
		doc(1, vikram, "CCTV Footage - Museum", models.DocTypeVideo, "mp4", "156 MB", true),
		doc(1, vikram, "FIR Copy", models.DocTypeDocument, "pdf", "0.5 MB", true),
		doc(4, anita, "Product Receipt", models.DocTypeDocument, "pdf", "0.3 MB", true),
		doc(4, anita, "Defect Photos", models.DocTypeImage, "jpg", "3.2 MB", false),
	}
	if err := tx.Omit("Case", "Uploader").Create(&documents).Error; err != nil {
		return fmt.Errorf("documents: %w", err)
	}

	// Tasks
	task := func(c int, owner *models.User, title string, completed bool, priority string, due time.Time) models.Task {
		return models.Task{
			CaseID:    cases[c].ID,
			UserID:    owner.ID,
			Title:     title,
			Completed: completed,
			Priority:  priority,
			DueDate:   &due,
		}
	}
	tasks := []models.Task{
		task(0, priya, "Prepare cross-examination questions", false, models.PriorityHigh, seedDate(2025, 2, 19)),
		task(0, priya, "Review property survey reports", true, models.PriorityMedium, seedDate(2025, 2, 15)),
		task(2, priya, "Draft final settlement agreement", false, models.PriorityHigh, seedDate(2025, 3, 1)),
		task(1, vikram, "Arrange expert witness testimony", false, models.PriorityHigh, seedDate(2025, 2, 21)),
		task(1, vikram, "File supplementary charge sheet", true, models.PriorityMedium, seedDate(2025, 2, 10)),
		task(4, anita, "Collect product testing report", false, models.PriorityMedium, seedDate(2025, 3, 8)),
	}
	if err := tx.Omit("Case", "User").Create(&tasks).Error; err != nil {
		return fmt.Errorf("tasks: %w", err)
	}

	// Notes
	notes := []models.CaseNote{
		{CaseID: cases[0].ID, UserID: priya.ID, Content: "Client confirmed property purchase in 2018. Original deed available."},
		{CaseID: cases[0].ID, UserID: priya.ID, Content: "Respondent's counsel requested adjournment, denied by judge."},
		{CaseID: cases[1].ID, UserID: vikram.ID, Content: "CCTV footage clearly shows accused entering museum at 2:15 AM."},
	}
	if err := tx.Omit("Case", "User").Create(&notes).Error; err != nil {
		return fmt.Errorf("notes: %w", err)
	}

	// Notifications
	notifier := NewNotificationService(tx)
	type notificationSeed struct {
		user                           *models.User
		kind, title, message, priority string
		read                           bool
	}
	notificationSeeds := []notificationSeed{
		{rajesh, models.NotificationTypeHearing, "Upcoming Hearing",
			"Your case CIV-2024-1842 has a hearing on 20 Feb 2025.", models.PriorityHigh, false},
		{rajesh, models.NotificationTypeUpdate, "Case Status Updated",
			"Case CIV-2024-1842 status changed to Hearing Scheduled.", models.PriorityMedium, true},
		{rajesh, models.NotificationTypeDocument, "Document Verified",
			"Property Deed has been verified by the court.", models.PriorityLow, true},
		{priya, models.NotificationTypeReminder, "Task Due Tomorrow",
			"Prepare cross-examination questions for CIV-2024-1842.", models.PriorityHigh, false},
		{priya, models.NotificationTypeHearing, "Hearing Reminder",
			"Hearing in CIV-2024-1842 scheduled for 20 Feb 2025 at 10:00 AM.", models.PriorityHigh, false},
		{court, models.NotificationTypeSystem, "New Case Filed",
			"Case FAM-2025-0078 has been filed and requires assignment.", models.PriorityMedium, false},
		{vikram, models.NotificationTypeHearing, "Hearing Tomorrow",
			"Evidence presentation in CRM-2024-0923 at Court Room 3.", models.PriorityHigh, false},
	}
	for _, s := range notificationSeeds {
		n, err := notifier.Notify(s.user.ID, s.kind, s.title, s.message, s.priority)
		if err != nil {
			return fmt.Errorf("notifications: %w", err)
		}
		if s.read {
			if _, err := notifier.MarkAsRead(n.ID, s.user.ID); err != nil {
				return fmt.Errorf("notifications: %w", err)
			}
		}
	}

	// Messages, one minute apart so conversations have a stable order
	sentBase := time.Now().UTC().Add(-time.Hour).Truncate(time.Minute)
	message := func(i int, from, to *models.User, content string) models.Message {
		return models.Message{
			SenderID:   from.ID,
			ReceiverID: to.ID,
			Content:    content,
			SentAt:     sentBase.Add(time.Duration(i) * time.Minute),
		}
	}
	messages := []models.Message{
		message(0, rajesh, priya, "Good morning, any update on my property case?"),
		message(1, priya, rajesh, "Hello Rajesh! The hearing is scheduled for 20th Feb. I'll need the original deed by then."),
		message(2, rajesh, priya, "Sure, I will bring it to your office tomorrow."),
		message(3, priya, court, "Requesting early hearing date for case FAM-2024-0445."),
		message(4, court, priya, "Noted. Will check availability and revert."),
		message(5, vikram, court, "Need permission to present additional evidence in CRM-2024-0923."),
		message(6, court, vikram, "Please file an application for the same. Will be taken up in next hearing."),
	}
	if err := tx.Omit("Sender", "Receiver").Create(&messages).Error; err != nil {
		return fmt.Errorf("messages: %w", err)
	}

	// Advocate workload
	for _, a := range []*models.User{priya, vikram, anita} {
		var active int64
		if err := tx.Model(&models.Case{}).
			Where("advocate_id = ? AND status IN ?", a.ID, models.ActiveCaseStatuses).
			Count(&active).Error; err != nil {
			return fmt.Errorf("advocate workload: %w", err)
		}
		if err := tx.Model(a).Update("active_cases", active).Error; err != nil {
			return fmt.Errorf("advocate workload: %w", err)
		}
	}

	return nil
}

func countSeeded(db *gorm.DB) (*SeedSummary, error) {
	s := &SeedSummary{}
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.User{}, &s.Users},
		{&models.Courtroom{}, &s.Courtrooms},
		{&models.Case{}, &s.Cases},
		{&models.Hearing{}, &s.Hearings},
		{&models.CaseTimeline{}, &s.Timeline},
		{&models.Document{}, &s.Documents},
		{&models.Task{}, &s.Tasks},
		{&models.CaseNote{}, &s.Notes},
		{&models.Notification{}, &s.Notifications},
		{&models.Message{}, &s.Messages},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to count %T: %w", c.model, err)
		}
	}
	return s, nil
}

func strPtr(s string) *string {
	return &s
}

func seedDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedTime(year int, month time.Month, day, hour, minute int) *time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	return &t
}
