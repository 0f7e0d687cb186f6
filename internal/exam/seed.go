package exam

// Seed dataset used when a collection has never been persisted or cannot be
// read. Mirrors the demo content the application ships with.

func SeedExams() []Exam {
	return []Exam{
		{
			ID:          1,
			Name:        "Examen de Matemáticas",
			Description: "Álgebra y geometría básica",
			Questions: []Question{
				{
					ID:   1,
					Text: "¿Cuánto es 2+2?",
					Options: []Option{
						{ID: 1, Text: "3"},
						{ID: 2, Text: "4"},
						{ID: 3, Text: "5"},
						{ID: 4, Text: "6"},
					},
					CorrectOptionID: 2,
				},
				{
					ID:   2,
					Text: "¿Cuál es el área de un cuadrado de lado 4?",
					Options: []Option{
						{ID: 1, Text: "8"},
						{ID: 2, Text: "12"},
						{ID: 3, Text: "16"},
						{ID: 4, Text: "20"},
					},
					CorrectOptionID: 3,
				},
			},
		},
	}
}

func SeedGroups() []Group {
	return []Group{
		{ID: 1, Name: "Grupo A", Members: []string{"12345678", "23456789"}},
		{ID: 2, Name: "Grupo B", Members: []string{"34567890"}},
	}
}

func SeedUsers() []User {
	return []User{
		{DNI: "admin", Password: "1234", Name: "Administrador", Role: RoleAdmin, Status: StatusActive, GroupIDs: []int{}},
		{DNI: "12345678", Password: "1234", Name: "Juan Pérez", Role: RoleStudent, Status: StatusActive, GroupIDs: []int{1}},
		{DNI: "23456789", Password: "5678", Name: "María García", Role: RoleStudent, Status: StatusActive, GroupIDs: []int{1}},
		{DNI: "34567890", Password: "9012", Name: "Carlos López", Role: RoleStudent, Status: StatusActive, GroupIDs: []int{2}},
	}
}

func SeedHabilitations() []Habilitation {
	return []Habilitation{
		{ID: 1, ExamID: 1, GroupID: 1, ShowScore: true},
	}
}

func SeedResults() []Result {
	return []Result{
		{
			StudentDNI: "12345678",
			ExamID:     1,
			Score:      10,
			Total:      10,
			Date:       "2026-02-01",
			Answers:    map[int]int{1: 2, 2: 3},
			ShowScore:  true,
		},
		{
			StudentDNI: "23456789",
			ExamID:     1,
			Score:      5,
			Total:      10,
			Date:       "2026-02-01",
			Answers:    map[int]int{1: 1, 2: 3},
			ShowScore:  true,
		},
	}
}
