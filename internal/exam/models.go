// Package exam holds the domain model and every mutation operation of the
// exam-management system: exams, groups, users, habilitations and results.
package exam

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"

	StatusActive  = "active"
	StatusPending = "pending"
)

// User is keyed by DNI, the national identity number students log in with.
// GroupIDs is authoritative for group membership; Group.Members is legacy.
type User struct {
	DNI      string `json:"dni"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	GroupIDs []int  `json:"groupIds"`
}

type Group struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// Members mirrors student DNIs for display; access decisions always go
	// through User.GroupIDs.
	Members []string `json:"members"`
}

type Option struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type Question struct {
	ID              int      `json:"id"`
	Text            string   `json:"text"`
	Options         []Option `json:"options"`
	CorrectOptionID int      `json:"correctOptionId,omitempty"`
}

type Exam struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// Habilitation grants one group access to one exam. At most one exists per
// (ExamID, GroupID) pair.
type Habilitation struct {
	ID        int  `json:"id"`
	ExamID    int  `json:"examId"`
	GroupID   int  `json:"groupId"`
	ShowScore bool `json:"showScore"`
}

// Result is the immutable record of one student's single attempt at one
// exam. ShowScore is snapshotted from the habilitation at submission time
// and never re-joined afterwards.
type Result struct {
	StudentDNI string      `json:"studentDni"`
	ExamID     int         `json:"examId"`
	Score      float64     `json:"score"`
	Total      float64     `json:"total"`
	Date       string      `json:"date"` // UTC calendar date, YYYY-MM-DD
	Answers    map[int]int `json:"answers"`
	ShowScore  bool        `json:"showScore"`
}

// Attempt is the in-session view handed to a student who started an exam:
// the exam with answer keys stripped plus the score-visibility flag resolved
// from the habilitation that granted access.
type Attempt struct {
	Exam      Exam `json:"exam"`
	ShowScore bool `json:"showScore"`
}

// Dataset bundles the five collections; snapshots of it feed the derived
// queries, CSV export and the admin views.
type Dataset struct {
	Exams         []Exam         `json:"exams"`
	Groups        []Group        `json:"groups"`
	Users         []User         `json:"users"`
	Habilitations []Habilitation `json:"habilitations"`
	Results       []Result       `json:"results"`
}
