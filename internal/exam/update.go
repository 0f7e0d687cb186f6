package exam

// Pure collection transforms. Every mutation operation builds its next
// collection value with these instead of editing slices in place.

func mapUsers(users []User, f func(User) User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, f(u))
	}
	return out
}

func mapGroups(groups []Group, f func(Group) Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, f(g))
	}
	return out
}

func filterExams(exams []Exam, keep func(Exam) bool) []Exam {
	out := make([]Exam, 0, len(exams))
	for _, e := range exams {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func filterGroups(groups []Group, keep func(Group) bool) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func filterUsers(users []User, keep func(User) bool) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

func filterHabilitations(hs []Habilitation, keep func(Habilitation) bool) []Habilitation {
	out := make([]Habilitation, 0, len(hs))
	for _, h := range hs {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

func filterResults(rs []Result, keep func(Result) bool) []Result {
	out := make([]Result, 0, len(rs))
	for _, r := range rs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func removeInt(xs []int, x int) []int {
	out := make([]int, 0, len(xs))
	for _, v := range xs {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}

func removeString(xs []string, x string) []string {
	out := make([]string, 0, len(xs))
	for _, v := range xs {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}

// nextExamID and friends: new IDs are max existing + 1, or 1 when empty.

func nextExamID(exams []Exam) int {
	max := 0
	for _, e := range exams {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

func nextGroupID(groups []Group) int {
	max := 0
	for _, g := range groups {
		if g.ID > max {
			max = g.ID
		}
	}
	return max + 1
}

func nextHabilitationID(hs []Habilitation) int {
	max := 0
	for _, h := range hs {
		if h.ID > max {
			max = h.ID
		}
	}
	return max + 1
}
