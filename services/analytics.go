package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"legal_cms_go/models"

	"gorm.io/gorm"
)

const (
	trendMonths    = 7
	pendencyMonths = 12
	// defaultTypeColor is used for case types outside caseTypeColors
	defaultTypeColor = "#64748b"
)

var caseTypeColors = map[string]string{
	"Civil":    "#4f46e5",
	"Criminal": "#ef4444",
	"Family":   "#f59e0b",
	"Consumer": "#10b981",
	"Writ":     "#8b5cf6",
}

var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type CourtDashboard struct {
	TotalCases     int64 `json:"totalCases"`
	PendingCases   int64 `json:"pendingCases"`
	ClosedCases    int64 `json:"closedCases"`
	DismissedCases int64 `json:"dismissedCases"`
	TodayHearings  int64 `json:"todayHearings"`
	AdvocatesCount int64 `json:"advocatesCount"`
}

type AdvocateDashboard struct {
	ActiveCases   int64 `json:"activeCases"`
	TodayHearings int64 `json:"todayHearings"`
	PendingTasks  int64 `json:"pendingTasks"`
	EvidenceCount int64 `json:"evidenceCount"`
}

type PublicDashboard struct {
	ActiveCases int64                   `json:"activeCases"`
	NextHearing *models.HearingResponse `json:"nextHearing"`
	Documents   int64                   `json:"documents"`
}

type TrendPoint struct {
	Month  string `json:"month"`
	Filed  int    `json:"filed"`
	Closed int    `json:"closed"`
}

type TypeSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

type DayLoad struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type PendencyPoint struct {
	Month   string `json:"month"`
	Pending int    `json:"pending"`
}

type Specialization struct {
	Type  string `json:"type"`
	Cases int64  `json:"cases"`
	Wins  int64  `json:"wins"`
	Rate  string `json:"rate"`
}

type AdvocatePerformance struct {
	TotalCases      int64            `json:"totalCases"`
	WinRate         string           `json:"winRate"`
	ActiveCases     int64            `json:"activeCases"`
	Specializations []Specialization `json:"specializations"`
}

// Dashboard returns the role-specific dashboard counters. The result is a
// *CourtDashboard, *AdvocateDashboard or *PublicDashboard.
func Dashboard(db *gorm.DB, user *models.User, now time.Time) (interface{}, error) {
	dayStart, dayEnd := dayBounds(now)

	switch user.Role {
	case models.RoleCourt:
		var d CourtDashboard
		counts := []struct {
			dst   *int64
			query *gorm.DB
		}{
			{&d.TotalCases, db.Model(&models.Case{})},
			{&d.PendingCases, db.Model(&models.Case{}).Where("status IN ?", models.ActiveCaseStatuses)},
			{&d.ClosedCases, db.Model(&models.Case{}).Where("status = ?", models.CaseStatusClosed)},
			{&d.DismissedCases, db.Model(&models.Case{}).Where("status = ?", models.CaseStatusDismissed)},
			{&d.TodayHearings, db.Model(&models.Hearing{}).Where("date >= ? AND date < ?", dayStart, dayEnd)},
			{&d.AdvocatesCount, db.Model(&models.User{}).Where("role = ?", models.RoleAdvocate)},
		}
		for _, c := range counts {
			if err := c.query.Count(c.dst).Error; err != nil {
				return nil, fmt.Errorf("failed to compute dashboard: %w", err)
			}
		}
		return &d, nil

	case models.RoleAdvocate:
		var d AdvocateDashboard
		visible := VisibleCaseIDs(db, user)
		counts := []struct {
			dst   *int64
			query *gorm.DB
		}{
			{&d.ActiveCases, db.Model(&models.Case{}).Scopes(CaseScope(user)).Where("cases.status IN ?", models.ActiveCaseStatuses)},
			{&d.TodayHearings, db.Model(&models.Hearing{}).Where("case_id IN (?) AND date >= ? AND date < ?", visible, dayStart, dayEnd)},
			{&d.PendingTasks, db.Model(&models.Task{}).Where("user_id = ? AND completed = ?", user.ID, false)},
			{&d.EvidenceCount, db.Model(&models.Document{}).Where("case_id IN (?)", visible)},
		}
		for _, c := range counts {
			if err := c.query.Count(c.dst).Error; err != nil {
				return nil, fmt.Errorf("failed to compute dashboard: %w", err)
			}
		}
		return &d, nil

	default:
		var d PublicDashboard
		visible := VisibleCaseIDs(db, user)
		if err := db.Model(&models.Case{}).Scopes(CaseScope(user)).Count(&d.ActiveCases).Error; err != nil {
			return nil, fmt.Errorf("failed to compute dashboard: %w", err)
		}
		if err := db.Model(&models.Document{}).Where("case_id IN (?)", visible).Count(&d.Documents).Error; err != nil {
			return nil, fmt.Errorf("failed to compute dashboard: %w", err)
		}

		var next models.Hearing
		err := db.Where("case_id IN (?) AND date >= ?", visible, dayStart).
			Order("date ASC").Order("id ASC").
			First(&next).Error
		switch {
		case err == nil:
			resp := next.ToResponse()
			d.NextHearing = &resp
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("failed to load next hearing: %w", err)
		}
		return &d, nil
	}
}

// CasesTrend counts filed and closed cases per filing month over the seven
// calendar months ending with the month of now
func CasesTrend(db *gorm.DB, user *models.User, now time.Time) ([]TrendPoint, error) {
	cases, err := loadCaseFacts(db, user)
	if err != nil {
		return nil, err
	}

	months := trailingMonths(now, trendMonths)
	points := make([]TrendPoint, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		points[i] = TrendPoint{Month: m.Format("Jan")}
		index[m.Format("2006-01")] = i
	}

	for _, c := range cases {
		i, ok := index[c.FilingDate.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		points[i].Filed++
		if c.Status == models.CaseStatusClosed {
			points[i].Closed++
		}
	}
	return points, nil
}

// CasesByType counts cases per case type with a display colour, largest
// first
func CasesByType(db *gorm.DB, user *models.User) ([]TypeSlice, error) {
	var rows []struct {
		CaseType string
		Total    int64
	}
	err := db.Model(&models.Case{}).Scopes(CaseScope(user)).
		Select("cases.case_type AS case_type, COUNT(cases.id) AS total").
		Group("cases.case_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group cases by type: %w", err)
	}

	slices := make([]TypeSlice, 0, len(rows))
	for _, r := range rows {
		color, ok := caseTypeColors[r.CaseType]
		if !ok {
			color = defaultTypeColor
		}
		slices = append(slices, TypeSlice{Name: r.CaseType, Value: r.Total, Color: color})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Name < slices[j].Name
	})
	return slices, nil
}

// DailyHearings counts hearings on each day from Monday to Saturday of the
// week containing now
func DailyHearings(db *gorm.DB, user *models.User, now time.Time) ([]DayLoad, error) {
	today, _ := dayBounds(now)
	monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	visible := VisibleCaseIDs(db, user)

	loads := make([]DayLoad, 0, len(weekdayLabels))
	for i, label := range weekdayLabels {
		start := monday.AddDate(0, 0, i)
		var count int64
		err := db.Model(&models.Hearing{}).
			Where("case_id IN (?) AND date >= ? AND date < ?", visible, start, start.AddDate(0, 0, 1)).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count hearings: %w", err)
		}
		loads = append(loads, DayLoad{Day: label, Count: count})
	}
	return loads, nil
}

// Pendency counts, for each of the twelve calendar months ending with the
// month of now, the cases filed by the end of that month whose status is
// still pending
func Pendency(db *gorm.DB, user *models.User, now time.Time) ([]PendencyPoint, error) {
	cases, err := loadCaseFacts(db, user)
	if err != nil {
		return nil, err
	}

	months := trailingMonths(now, pendencyMonths)
	points := make([]PendencyPoint, len(months))
	for i, m := range months {
		end := m.AddDate(0, 1, 0)
		pending := 0
		for _, c := range cases {
			if c.FilingDate.Before(end) && models.IsPendingStatus(c.Status) {
				pending++
			}
		}
		points[i] = PendencyPoint{Month: m.Format("Jan"), Pending: pending}
	}
	return points, nil
}

// AdvocatePerformanceFor reports case totals and win rates for an advocate.
// Court users may inspect any advocate through advocateID; everyone else gets
// their own figures.
func AdvocatePerformanceFor(db *gorm.DB, user *models.User, advocateID uint) (*AdvocatePerformance, error) {
	subject := user.ID
	if user.IsCourt() && advocateID != 0 {
		var advocate models.User
		err := db.Where("id = ? AND role = ?", advocateID, models.RoleAdvocate).First(&advocate).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFound("Advocate not found")
			}
			return nil, fmt.Errorf("failed to load advocate: %w", err)
		}
		subject = advocate.ID
	}

	var rows []struct {
		CaseType string
		Status   string
		Total    int64
	}
	err := db.Model(&models.Case{}).
		Select("case_type, status, COUNT(id) AS total").
		Where("advocate_id = ?", subject).
		Group("case_type, status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute performance: %w", err)
	}

	perf := &AdvocatePerformance{Specializations: []Specialization{}}
	var won int64
	byType := make(map[string]*Specialization)
	var order []string
	for _, r := range rows {
		perf.TotalCases += r.Total
		if models.IsActiveStatus(r.Status) {
			perf.ActiveCases += r.Total
		}

		entry, ok := byType[r.CaseType]
		if !ok {
			entry = &Specialization{Type: r.CaseType}
			byType[r.CaseType] = entry
			order = append(order, r.CaseType)
		}
		entry.Cases += r.Total
		if r.Status == models.CaseStatusClosed {
			entry.Wins += r.Total
			won += r.Total
		}
	}

	perf.WinRate = "0%"
	if perf.TotalCases > 0 {
		perf.WinRate = fmt.Sprintf("%.1f%%", float64(won)/float64(perf.TotalCases)*100)
	}

	sort.Strings(order)
	for _, t := range order {
		entry := byType[t]
		entry.Rate = fmt.Sprintf("%d%%", int(math.RoundToEven(float64(entry.Wins)/float64(entry.Cases)*100)))
		perf.Specializations = append(perf.Specializations, *entry)
	}
	return perf, nil
}

// loadCaseFacts loads the filing date and status of every case visible to
// user. Month bucketing happens in Go so it behaves the same on every driver.
func loadCaseFacts(db *gorm.DB, user *models.User) ([]models.Case, error) {
	var cases []models.Case
	err := db.Model(&models.Case{}).Scopes(CaseScope(user)).
		Select("cases.id", "cases.filing_date", "cases.status").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}
	return cases, nil
}

// trailingMonths returns the first day of each of the n calendar months
// ending with the month of now, oldest first
func trailingMonths(now time.Time, n int) []time.Time {
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]time.Time, n)
	for i := 0; i < n; i++ {
		months[i] = current.AddDate(0, i-(n-1), 0)
	}
	return months
}

func dayBounds(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
