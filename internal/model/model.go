package model

import (
	"time"
)

type Category string

const (
	CategoryFiction    Category = "fiction"
	CategoryNonFiction Category = "non-fiction"
	CategoryScience    Category = "science"
	CategoryTechnology Category = "technology"
	CategoryHistory    Category = "history"
	CategoryArts       Category = "arts"
)

type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusPartially   AvailabilityStatus = "partially_available"
	StatusUnavailable AvailabilityStatus = "unavailable"
)

type Book struct {
	ID                int                `json:"-" db:"id"`
	BookUid           string             `json:"bookUid" db:"book_uid"`
	ISBN              string             `json:"isbn" db:"isbn"`
	Title             string             `json:"title" db:"title"`
	Author            string             `json:"author" db:"author"`
	Category          Category           `json:"category" db:"category"`
	TotalQuantity     int                `json:"totalQuantity" db:"total_quantity"`
	AvailableQuantity int                `json:"availableQuantity" db:"available_quantity"`
	AverageRating     float64            `json:"averageRating" db:"average_rating"`
	Status            AvailabilityStatus `json:"status" db:"-"`
}

// ComputeStatus derives the availability status shown in catalog listings.
func (b Book) ComputeStatus() AvailabilityStatus {
	switch {
	case b.AvailableQuantity == 0:
		return StatusUnavailable
	case b.AvailableQuantity < b.TotalQuantity:
		return StatusPartially
	default:
		return StatusAvailable
	}
}

type Borrower struct {
	Username string    `json:"username" db:"username"`
	DueDate  time.Time `json:"dueDate" db:"due_date"`
}

type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "BORROWED"
	LoanStatusReturned LoanStatus = "RETURNED"
)

type Loan struct {
	ID         int        `json:"-" db:"id"`
	LoanUid    string     `json:"loanUid" db:"loan_uid"`
	Username   string     `json:"username" db:"username"`
	BookUid    string     `json:"bookUid" db:"book_uid"`
	Status     LoanStatus `json:"status" db:"status"`
	BorrowDate time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Fine       *int       `json:"fine,omitempty" db:"fine"`
}

// IsOverdue reports whether an active loan is past due at the given instant.
func (l Loan) IsOverdue(now time.Time) bool {
	return l.Status == LoanStatusBorrowed && now.After(l.DueDate)
}

// ActiveLoan is a user's borrowed book as shown on "my books".
type ActiveLoan struct {
	LoanUid    string    `json:"loanUid" db:"loan_uid"`
	BookUid    string    `json:"bookUid" db:"book_uid"`
	Title      string    `json:"title" db:"title"`
	Author     string    `json:"author" db:"author"`
	ISBN       string    `json:"isbn" db:"isbn"`
	BorrowDate time.Time `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time `json:"dueDate" db:"due_date"`
	IsOverdue  bool      `json:"isOverdue" db:"-"`
}

type HistoryItem struct {
	LoanUid    string     `json:"loanUid" db:"loan_uid"`
	BookUid    string     `json:"bookUid" db:"book_uid"`
	Title      string     `json:"title" db:"title"`
	Author     string     `json:"author" db:"author"`
	ISBN       string     `json:"isbn" db:"isbn"`
	Status     LoanStatus `json:"status" db:"status"`
	BorrowDate time.Time  `json:"borrowDate" db:"borrow_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Fine       *int       `json:"fine,omitempty" db:"fine"`
	IsOverdue  bool       `json:"isOverdue" db:"-"`
}

type Review struct {
	ID        int       `json:"-" db:"id"`
	Username  string    `json:"username" db:"username"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type User struct {
	ID           int    `json:"-" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	Active       bool   `json:"active" db:"active"`
}

type BookFilter struct {
	Category     string
	Availability string
	Search       string
	SortBy       string
}

type ListBooks struct {
	Items []Book `json:"items"`
}

type CreateBookRequest struct {
	Title         string   `json:"title" validate:"required"`
	Author        string   `json:"author" validate:"required"`
	ISBN          string   `json:"isbn" validate:"required"`
	Category      Category `json:"category" validate:"required,oneof=fiction non-fiction science technology history arts"`
	TotalQuantity int      `json:"totalQuantity" validate:"required,min=1"`
}

type UpdateBookRequest struct {
	Title         string   `json:"title" validate:"required"`
	Author        string   `json:"author" validate:"required"`
	Category      Category `json:"category" validate:"required,oneof=fiction non-fiction science technology history arts"`
	TotalQuantity int      `json:"totalQuantity" validate:"required,min=1"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	AdminCode string `json:"adminCode"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	ExpiresIn   int    `json:"expiresIn"`
	AccessToken string `json:"accessToken"`
}

// DashboardResponse is a tagged variant: exactly one of Admin and User is set,
// selected by the caller's role at the handler boundary.
type DashboardResponse struct {
	Role  string          `json:"role"`
	Admin *AdminDashboard `json:"admin,omitempty"`
	User  *UserDashboard  `json:"user,omitempty"`
}

type AdminDashboard struct {
	TotalBooks   int         `json:"totalBooks"`
	ActiveUsers  int         `json:"activeUsers"`
	ActiveLoans  int         `json:"activeLoans"`
	OverdueLoans int         `json:"overdueLoans"`
	RecentEvents []LoanEvent `json:"recentEvents"`
}

type UserDashboard struct {
	BorrowedBooks []ActiveLoan `json:"borrowedBooks"`
}

type LoanEvent struct {
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Username  string    `json:"username" db:"username"`
	LoanUid   string    `json:"loanUid" db:"loan_uid"`
	BookUid   string    `json:"bookUid" db:"book_uid"`
	EventType string    `json:"eventType" db:"event_type"`
}

type Report struct {
	TotalLoans   int           `json:"totalLoans"`
	ActiveLoans  int           `json:"activeLoans"`
	OverdueLoans int           `json:"overdueLoans"`
	PopularBooks []PopularBook `json:"popularBooks"`
}

type PopularBook struct {
	BookUid   string `json:"bookUid" db:"book_uid"`
	Title     string `json:"title" db:"title"`
	Author    string `json:"author" db:"author"`
	LoanCount int    `json:"loanCount" db:"loan_count"`
}

type Notifications struct {
	UpcomingDue []DueNotice     `json:"upcomingDue"`
	Overdue     []OverdueNotice `json:"overdue"`
}

type DueNotice struct {
	BookTitle string    `json:"bookTitle" db:"title"`
	DueDate   time.Time `json:"dueDate" db:"due_date"`
}

type OverdueNotice struct {
	BookTitle   string    `json:"bookTitle" db:"title"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`
	DaysOverdue int       `json:"daysOverdue" db:"-"`
}
