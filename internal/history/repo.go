package history

import (
	"math"
	"sort"
	"sync"
	"time"

	"ecoscore/internal/utils"
)

// Entry is one scored product kept in the history.
type Entry struct {
	Id          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ProductName string    `json:"product_name"`
	Materials   []string  `json:"materials"`
	WeightGrams float64   `json:"weight_grams"`
	Transport   string    `json:"transport"`
	Packaging   string    `json:"packaging"`
	Gwp         float64   `json:"gwp"`
	Cost        float64   `json:"cost"`
	Circularity float64   `json:"circularity"`
	Score       float64   `json:"sustainability_score"`
	Rating      string    `json:"rating"`
	Suggestions []string  `json:"suggestions"`
}

// Summary is the aggregate view over everything ever appended.
type Summary struct {
	TotalProducts int            `json:"total_products"`
	AverageScore  float64        `json:"average_score"`
	Ratings       map[string]int `json:"ratings"`
	TopIssues     []string       `json:"top_issues"`
}

// topIssueCount bounds how many recurring suggestions Summary reports.
const topIssueCount = 5

// Repository is a thread-safe in-memory history of scored products.
// Recent entries are kept in a fixed-size ring buffer; the aggregates
// behind Summary are maintained incrementally on Append, so they cover
// every entry ever recorded, not only the bounded recent window.
type Repository struct {
	recent *utils.RingBuffer[Entry]

	mu          sync.Mutex
	nextId      int64
	count       int
	scoreSum    float64
	ratings     map[string]int
	issueCounts map[string]int
}

// NewRepository creates a history with the given recent-entries window.
// A window ≤ 0 falls back to 100.
func NewRepository(window int) *Repository {
	if window <= 0 {
		window = 100
	}
	return &Repository{
		recent:      utils.NewRingBuffer[Entry](window),
		ratings:     make(map[string]int),
		issueCounts: make(map[string]int),
	}
}

// Append records one scored product, assigns it the next sequence id and
// returns the stored entry.
func (r *Repository) Append(e Entry) Entry {
	r.mu.Lock()
	r.nextId++
	e.Id = r.nextId
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	r.count++
	r.scoreSum += e.Score
	r.ratings[e.Rating]++
	for _, s := range e.Suggestions {
		r.issueCounts[s]++
	}
	r.mu.Unlock()

	r.recent.Push(e)
	return e
}

// Recent returns up to limit entries, newest first. A limit ≤ 0 returns
// nothing.
func (r *Repository) Recent(limit int) []Entry {
	if limit <= 0 {
		return []Entry{}
	}

	all := r.recent.ToSlice()
	if limit > len(all) {
		limit = len(all)
	}

	entries := make([]Entry, 0, limit)
	for i := len(all) - 1; i >= len(all)-limit; i-- {
		entries = append(entries, all[i])
	}
	return entries
}

// Summary returns the aggregates over all appended entries: total count,
// average score rounded to two decimals, a rating histogram and the most
// frequent suggestions. Ties in suggestion frequency break alphabetically
// to keep the output deterministic.
func (r *Repository) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	average := 0.0
	if r.count > 0 {
		average = math.Round(r.scoreSum/float64(r.count)*100) / 100
	}

	ratings := make(map[string]int, len(r.ratings))
	for rating, n := range r.ratings {
		ratings[rating] = n
	}

	issues := make([]string, 0, len(r.issueCounts))
	for issue := range r.issueCounts {
		issues = append(issues, issue)
	}
	sort.Slice(issues, func(i, j int) bool {
		if r.issueCounts[issues[i]] != r.issueCounts[issues[j]] {
			return r.issueCounts[issues[i]] > r.issueCounts[issues[j]]
		}
		return issues[i] < issues[j]
	})
	if len(issues) > topIssueCount {
		issues = issues[:topIssueCount]
	}

	return Summary{
		TotalProducts: r.count,
		AverageScore:  average,
		Ratings:       ratings,
		TopIssues:     issues,
	}
}
