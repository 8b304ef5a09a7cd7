package service

import (
	"errors"
	"time"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrEventNotFound  = errors.New("event not found")
)

type HealthService struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
}

type Clinic struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Phone    string   `json:"phone"`
	Services []string `json:"services"`
}

type HealthStatus struct {
	Services []HealthService `json:"services"`
	Clinics  []Clinic        `json:"clinics"`
}

type Appointment struct {
	ID      int       `json:"id"`
	Service string    `json:"service"`
	Clinic  string    `json:"clinic"`
	Date    time.Time `json:"date"`
	Status  string    `json:"status"`
}

type AgroTip struct {
	ID       int    `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

type Weather struct {
	Location    string `json:"location"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Forecast    string `json:"forecast"`
}

type AgroAdvice struct {
	Tips    []AgroTip `json:"tips"`
	Weather Weather   `json:"weather"`
}

type MarketPrice struct {
	Product  string          `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
	Currency string          `json:"currency"`
}

type MarketReport struct {
	Prices      []MarketPrice `json:"prices"`
	Market      string        `json:"market"`
	LastUpdated time.Time     `json:"last_updated"`
}

type Equipment struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
	Currency    string          `json:"currency"`
	Available   bool            `json:"available"`
}

type SyllabusWeek struct {
	Week  int    `json:"week"`
	Topic string `json:"topic"`
}

type Course struct {
	ID               int             `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	DurationWeeks    int             `json:"duration_weeks"`
	Price            decimal.Decimal `json:"price"`
	Currency         string          `json:"currency"`
	Level            string          `json:"level"`
	Syllabus         []SyllabusWeek  `json:"syllabus,omitempty"`
	Instructor       string          `json:"instructor,omitempty"`
	EnrolledStudents int             `json:"enrolled_students,omitempty"`
}

type Resource struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	URL   string `json:"url"`
}

type Reminder struct {
	Time string `json:"time"`
	Sent bool   `json:"sent"`
}

type CalendarEvent struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Reminders   []Reminder `json:"reminders,omitempty"`
}

type TravelPackage struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Destination  string          `json:"destination"`
	DurationDays int             `json:"duration_days"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Includes     []string        `json:"includes"`
}

// ContentService serves the read-only catalogs behind the health, agro,
// education, calendar and travel package pages.
type ContentService interface {
	HealthStatus() HealthStatus
	Appointments() []Appointment
	HealthRecords() []any
	AgroAdvice() AgroAdvice
	MarketPrices() MarketReport
	Equipment() []Equipment
	Courses() []Course
	Course(id int) (*Course, error)
	Enrollments() []Course
	Resources() []Resource
	CalendarEvents() []CalendarEvent
	CalendarEvent(id int) (*CalendarEvent, error)
	UpcomingEvents(window time.Duration) []CalendarEvent
	TravelPackages() []TravelPackage
}

type contentService struct {
	now func() time.Time
}

func NewContentService() ContentService {
	return &contentService{now: time.Now}
}

func npr(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func (s *contentService) HealthStatus() HealthStatus {
	return HealthStatus{
		Services: []HealthService{
			{ID: 1, Name: "General Consultation", Description: "Consultation with general practitioners", Price: npr(500), Currency: models.DefaultCurrency},
			{ID: 2, Name: "Dental Care", Description: "Dental checkup and treatment", Price: npr(1000), Currency: models.DefaultCurrency},
			{ID: 3, Name: "Laboratory Tests", Description: "Blood tests, urine tests, and more", Price: npr(800), Currency: models.DefaultCurrency},
		},
		Clinics: []Clinic{
			{Name: "NEXO Health Center", Address: "Kathmandu, Nepal", Phone: "+977-1-4444444", Services: []string{"General", "Dental", "Laboratory"}},
		},
	}
}

func (s *contentService) Appointments() []Appointment {
	return []Appointment{
		{ID: 1, Service: "General Consultation", Clinic: "NEXO Health Center", Date: day(s.now()).Add(2*24*time.Hour + 10*time.Hour), Status: "scheduled"},
	}
}

func (s *contentService) HealthRecords() []any {
	return []any{}
}

func (s *contentService) AgroAdvice() AgroAdvice {
	return AgroAdvice{
		Tips: []AgroTip{
			{ID: 1, Category: "Crop Management", Title: "Rice Cultivation Tips", Content: "Ensure proper water management and timely fertilizer application for better yield"},
			{ID: 2, Category: "Pest Control", Title: "Natural Pest Management", Content: "Use neem oil and companion planting to control pests naturally"},
			{ID: 3, Category: "Soil Health", Title: "Composting Guide", Content: "Create nutrient-rich compost using kitchen waste and farm residues"},
		},
		Weather: Weather{Location: "Kathmandu", Temperature: "24°C", Condition: "Partly cloudy", Forecast: "Good conditions for planting"},
	}
}

func (s *contentService) MarketPrices() MarketReport {
	return MarketReport{
		Prices: []MarketPrice{
			{Product: "Rice", Price: npr(45), Unit: "kg", Currency: models.DefaultCurrency},
			{Product: "Wheat", Price: npr(35), Unit: "kg", Currency: models.DefaultCurrency},
			{Product: "Tomato", Price: npr(60), Unit: "kg", Currency: models.DefaultCurrency},
			{Product: "Potato", Price: npr(40), Unit: "kg", Currency: models.DefaultCurrency},
		},
		Market:      "Kalimati Fruit and Vegetable Market",
		LastUpdated: day(s.now()).Add(10 * time.Hour),
	}
}

func (s *contentService) Equipment() []Equipment {
	return []Equipment{
		{ID: 1, Name: "Tractor", Type: "rental", PricePerDay: npr(3000), Currency: models.DefaultCurrency, Available: true},
		{ID: 2, Name: "Harvester", Type: "rental", PricePerDay: npr(5000), Currency: models.DefaultCurrency, Available: true},
	}
}

var courses = []Course{
	{
		ID: 1, Title: "Digital Literacy Basics", Description: "Learn essential computer and internet skills",
		Category: "Technology", DurationWeeks: 4, Price: npr(5000), Currency: models.DefaultCurrency, Level: "Beginner",
		Syllabus: []SyllabusWeek{
			{Week: 1, Topic: "Computer Basics and Operating Systems"},
			{Week: 2, Topic: "Internet and Email Usage"},
			{Week: 3, Topic: "Document Creation and Editing"},
			{Week: 4, Topic: "Online Safety and Security"},
		},
		Instructor: "Expert Instructor", EnrolledStudents: 45,
	},
	{
		ID: 2, Title: "English Language Course", Description: "Improve your English communication skills",
		Category: "Language", DurationWeeks: 12, Price: npr(8000), Currency: models.DefaultCurrency, Level: "All Levels",
	},
	{
		ID: 3, Title: "Basic Accounting", Description: "Learn fundamental accounting principles",
		Category: "Business", DurationWeeks: 6, Price: npr(6000), Currency: models.DefaultCurrency, Level: "Beginner",
	},
}

// Courses lists the catalog without per-course detail.
func (s *contentService) Courses() []Course {
	out := make([]Course, len(courses))
	for i, c := range courses {
		c.Syllabus, c.Instructor, c.EnrolledStudents = nil, "", 0
		out[i] = c
	}
	return out
}

func (s *contentService) Course(id int) (*Course, error) {
	for _, c := range courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrCourseNotFound
}

func (s *contentService) Enrollments() []Course {
	return []Course{}
}

func (s *contentService) Resources() []Resource {
	return []Resource{
		{ID: 1, Title: "Free Digital Skills Tutorial", Type: "video", URL: "https://example.com/tutorial1"},
		{ID: 2, Title: "English Grammar Guide", Type: "pdf", URL: "https://example.com/guide.pdf"},
	}
}

// CalendarEvents are scheduled relative to now.
func (s *contentService) CalendarEvents() []CalendarEvent {
	now := s.now().UTC()
	return []CalendarEvent{
		{
			ID: 1, Title: "Doctor Appointment", Description: "General checkup at NEXO Health Center",
			StartTime: now.Add(48 * time.Hour), EndTime: now.Add(49 * time.Hour),
			Category: "health", Location: "NEXO Health Center",
		},
		{
			ID: 2, Title: "Digital Literacy Class", Description: "Week 1: Computer Basics",
			StartTime: now.Add(5 * 24 * time.Hour), EndTime: now.Add(5*24*time.Hour + 2*time.Hour),
			Category: "education", Location: "Online",
		},
		{
			ID: 3, Title: "Farmers Market Day", Description: "Seasonal produce at Kalimati",
			StartTime: now.Add(10 * 24 * time.Hour), EndTime: now.Add(10*24*time.Hour + 4*time.Hour),
			Category: "agro", Location: "Kalimati Fruit and Vegetable Market",
		},
	}
}

func (s *contentService) CalendarEvent(id int) (*CalendarEvent, error) {
	for _, ev := range s.CalendarEvents() {
		if ev.ID == id {
			ev.Reminders = []Reminder{
				{Time: "1 day before", Sent: false},
				{Time: "1 hour before", Sent: false},
			}
			return &ev, nil
		}
	}
	return nil, ErrEventNotFound
}

func (s *contentService) UpcomingEvents(window time.Duration) []CalendarEvent {
	cutoff := s.now().UTC().Add(window)
	upcoming := []CalendarEvent{}
	for _, ev := range s.CalendarEvents() {
		if !ev.StartTime.After(cutoff) {
			upcoming = append(upcoming, ev)
		}
	}
	return upcoming
}

func (s *contentService) TravelPackages() []TravelPackage {
	return []TravelPackage{
		{ID: 1, Name: "Pokhara Lakeside Getaway", Destination: "Pokhara", DurationDays: 3, Price: npr(15000), Currency: models.DefaultCurrency,
			Includes: []string{"Hotel", "Car rental", "Boating on Phewa Lake"}},
		{ID: 2, Name: "Chitwan Jungle Safari", Destination: "Chitwan", DurationDays: 4, Price: npr(22000), Currency: models.DefaultCurrency,
			Includes: []string{"Resort stay", "Jeep safari", "Meals"}},
		{ID: 3, Name: "Lumbini Heritage Tour", Destination: "Lumbini", DurationDays: 2, Price: npr(9000), Currency: models.DefaultCurrency,
			Includes: []string{"Hotel", "Guided tour"}},
	}
}
