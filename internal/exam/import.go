package exam

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Bulk user import: a semicolon-delimited blob with the header
// dni;nombre;apellido;contraseña;grupo (case-insensitive). Rows are
// validated and staged as a preview; nothing is committed while any row is
// in error.

type ImportRow struct {
	Row       int    `json:"row"` // 1-based data row, header excluded
	DNI       string `json:"dni" validate:"required,min=6"`
	FirstName string `json:"name" validate:"required,min=2"`
	LastName  string `json:"lastName" validate:"required,min=2"`
	Password  string `json:"password" validate:"required,min=4"`
	GroupText string `json:"group"`
}

type ImportPreview struct {
	Users     []User     `json:"users"`
	RowErrors []RowError `json:"errors"`
}

// OK reports whether the preview can be committed.
func (p ImportPreview) OK() bool { return len(p.RowErrors) == 0 }

var importColumns = []string{"dni", "nombre", "apellido", "contraseña", "grupo"}

// StageImport parses and validates an import blob without mutating any
// state. Row errors are collected, not short-circuited, so the admin can
// fix the whole file in one pass.
func (s *Service) StageImport(_ context.Context, blob string) (ImportPreview, error) {
	rows, err := parseImportRows(blob)
	if err != nil {
		return ImportPreview{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	preview := ImportPreview{}
	seen := map[string]int{} // dni -> first row in this file
	for _, row := range rows {
		if msg, ok := s.checkImportRow(row, seen); !ok {
			preview.RowErrors = append(preview.RowErrors, RowError{Row: row.Row, Msg: msg})
			continue
		}
		seen[row.DNI] = row.Row
		preview.Users = append(preview.Users, User{
			DNI:      row.DNI,
			Password: row.Password,
			Name:     row.FirstName + " " + row.LastName,
			Role:     RoleStudent,
			Status:   StatusActive,
			GroupIDs: s.matchGroups(row.GroupText),
		})
	}
	return preview, nil
}

// CommitImport appends the previewed users and adds them to their matched
// groups' member lists. The preview travels through the client between
// staging and commit, so nothing in it is trusted: the row rules are
// re-applied, role and status are forced, group references are re-checked,
// and a stale preview with now-duplicate DNIs is rejected as a whole.
func (s *Service) CommitImport(_ context.Context, preview ImportPreview) error {
	if !preview.OK() {
		return validationf("import has row errors; fix them before committing")
	}
	if len(preview.Users) == 0 {
		return validationf("nothing to import")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	staged := make([]User, 0, len(preview.Users))
	for _, u := range preview.Users {
		u.Role = RoleStudent
		u.Status = StatusActive
		if err := checkCommitUser(u); err != nil {
			return err
		}
		if _, exists := s.findUser(u.DNI); exists || seen[u.DNI] {
			return ErrDuplicateDNI
		}
		seen[u.DNI] = true
		for _, gid := range u.GroupIDs {
			if _, ok := s.findGroup(gid); !ok {
				return validationf("user %s: group %d does not exist", u.DNI, gid)
			}
		}
		staged = append(staged, u)
	}

	users := append([]User(nil), s.users...)
	groups := append([]Group(nil), s.groups...)
	for _, u := range staged {
		users = append(users, u)
		for _, gid := range u.GroupIDs {
			for i := range groups {
				if groups[i].ID == gid {
					groups[i].Members = append(append([]string(nil), groups[i].Members...), u.DNI)
				}
			}
		}
	}
	s.users = users
	s.groups = groups
	s.persistUsers()
	s.persistGroups()
	return nil
}

// checkCommitUser re-applies the per-row field rules to a staged user.
func checkCommitUser(u User) error {
	if len(u.DNI) < 6 {
		return validationf("user %s: DNI must be at least 6 characters", u.DNI)
	}
	if len(u.Password) < 4 {
		return validationf("user %s: password must be at least 4 characters", u.DNI)
	}
	parts := strings.Fields(u.Name)
	if len(parts) < 2 || len(parts[0]) < 2 || len(parts[len(parts)-1]) < 2 {
		return validationf("user %s: first and last name are required", u.DNI)
	}
	return nil
}

func (s *Service) checkImportRow(row ImportRow, seen map[string]int) (string, bool) {
	if err := s.validate.Struct(row); err != nil {
		return importRowMessage(row), false
	}
	if _, exists := s.findUser(row.DNI); exists {
		return fmt.Sprintf("DNI %s already exists", row.DNI), false
	}
	if prev, dup := seen[row.DNI]; dup {
		return fmt.Sprintf("DNI %s duplicates row %d", row.DNI, prev), false
	}
	return "", true
}

// importRowMessage translates the first failing field check into the
// message the admin sees next to the row.
func importRowMessage(row ImportRow) string {
	switch {
	case len(row.DNI) < 6:
		return "DNI must be at least 6 characters"
	case len(row.FirstName) < 2:
		return "name must be at least 2 characters"
	case len(row.LastName) < 2:
		return "last name must be at least 2 characters"
	case len(row.Password) < 4:
		return "password must be at least 4 characters"
	default:
		return "invalid row"
	}
}

// matchGroups resolves the free-text group column: case-insensitive
// substring match against existing group names. No text or no match leaves
// the student without groups.
func (s *Service) matchGroups(text string) []int {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return []int{}
	}
	for _, g := range s.groups {
		if strings.Contains(strings.ToLower(g.Name), text) {
			return []int{g.ID}
		}
	}
	return []int{}
}

func parseImportRows(blob string) ([]ImportRow, error) {
	r := csv.NewReader(strings.NewReader(blob))
	r.Comma = ';'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, validationf("empty import file")
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range importColumns {
		if _, ok := idx[col]; !ok {
			return nil, validationf("missing column: %s", col)
		}
	}

	var rows []ImportRow
	line := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, validationf("malformed CSV: %v", err)
		}
		line++
		field := func(col string) string {
			i := idx[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		rows = append(rows, ImportRow{
			Row:       line,
			DNI:       field("dni"),
			FirstName: field("nombre"),
			LastName:  field("apellido"),
			Password:  field("contraseña"),
			GroupText: field("grupo"),
		})
	}
	return rows, nil
}
