// Package models defines the wire types exchanged with the BookGenie REST
// API. Field names follow the backend: auth/user/subscription payloads are
// camelCase, book and category payloads are snake_case.
package models

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type SubscriptionLevel string

const (
	SubscriptionFree    SubscriptionLevel = "free"
	SubscriptionBasic   SubscriptionLevel = "basic"
	SubscriptionPremium SubscriptionLevel = "premium"
)

// User is the server-owned identity record. The client holds a read-mostly
// cached copy refreshed after profile or subscription mutations.
type User struct {
	ID                int64             `json:"id"`
	Email             string            `json:"email"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	Avatar            string            `json:"avatar,omitempty"`
	AcademicLevel     string            `json:"academicLevel,omitempty"`
	Department        string            `json:"department,omitempty"`
	Role              Role              `json:"role"`
	SubscriptionLevel SubscriptionLevel `json:"subscriptionLevel"`
	CreatedAt         string            `json:"createdAt,omitempty"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName returns a human-friendly name, falling back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

type Book struct {
	ID                int64             `json:"id"`
	Title             string            `json:"title"`
	Author            string            `json:"author"`
	Abstract          string            `json:"abstract,omitempty"`
	Genre             string            `json:"genre,omitempty"`
	AcademicLevel     string            `json:"academic_level,omitempty"`
	SubscriptionLevel SubscriptionLevel `json:"subscription_level,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	Pages             int               `json:"pages,omitempty"`
	FileURL           string            `json:"file_url,omitempty"`
	CoverImage        string            `json:"cover_image,omitempty"`
}

// Category is server-owned; BookCount is derived server-side and never
// computed locally.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	BookCount   int    `json:"book_count"`
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// SubscriptionRequest is an upgrade request in the admin queue. Once it
// leaves the pending state it disappears from the actionable list.
type SubscriptionRequest struct {
	ID               int64             `json:"id"`
	UserID           int64             `json:"userId"`
	UserName         string            `json:"userName"`
	UserEmail        string            `json:"userEmail"`
	CurrentLevel     SubscriptionLevel `json:"currentLevel"`
	RequestedLevel   SubscriptionLevel `json:"requestedLevel"`
	Status           RequestStatus     `json:"status"`
	RejectionMessage string            `json:"rejectionMessage,omitempty"`
	CreatedAt        string            `json:"createdAt"`
}

// SearchResult is one semantic-search hit. Depending on the search engine the
// server nests the book or inlines its fields, so both shapes are accepted.
type SearchResult struct {
	Book

	Nested *Book `json:"book,omitempty"`

	SimilarityScore     float64 `json:"similarity_score"`
	RelevancePercentage float64 `json:"relevance_percentage"`
}

// Item returns the matched book regardless of which shape the server used.
func (r SearchResult) Item() Book {
	if r.Nested != nil {
		return *r.Nested
	}
	return r.Book
}

// Score returns the best available relevance signal.
func (r SearchResult) Score() float64 {
	if r.SimilarityScore > 0 {
		return r.SimilarityScore
	}
	return r.RelevancePercentage
}

type SearchResponse struct {
	Query        string         `json:"query"`
	Results      []SearchResult `json:"results"`
	TotalCount   int            `json:"total_count"`
	Message      string         `json:"message,omitempty"`
	SearchEngine string         `json:"search_engine,omitempty"`
}

// Analytics is the admin analytics summary. Chart-oriented sections of the
// payload (time series, distributions) are kept as loose maps since the CLI
// only renders the headline numbers.
type Analytics struct {
	TotalStats struct {
		TotalUsers           int `json:"totalUsers"`
		TotalBooks           int `json:"totalBooks"`
		TotalSearches        int `json:"totalSearches"`
		TotalReadingSessions int `json:"totalReadingSessions"`
	} `json:"totalStats"`
	DailyStats struct {
		NewUsers        int `json:"newUsers"`
		Searches        int `json:"searches"`
		ReadingSessions int `json:"readingSessions"`
		PendingRequests int `json:"pendingRequests"`
	} `json:"dailyStats"`
	SubscriptionStats map[string]int `json:"subscriptionStats"`
	PopularSearches   []struct {
		Query string `json:"query"`
		Count int    `json:"count"`
	} `json:"popularSearches"`
	TopBooks []struct {
		ID            int64  `json:"id"`
		Title         string `json:"title"`
		Author        string `json:"author"`
		DownloadCount int    `json:"downloadCount"`
	} `json:"topBooks"`
}
