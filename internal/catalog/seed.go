package catalog

var categories = []Category{
	{
		ID:    "medical",
		Name:  "Medical & Healthcare",
		Exams: []string{"USMLE", "NBDE", "NAPLEX", "NCLEX", "NAVLE", "NPTE", "CMA"},
	},
	{
		ID:    "legal",
		Name:  "Legal",
		Exams: []string{"Bar Exam", "Paralegal Certification", "Notary Public", "Legal Assistant"},
	},
	{
		ID:   "engineering",
		Name: "Engineering & Technical",
		Exams: []string{
			"PE", "FE", "Electrical Engineering", "Mechanical Engineering",
			"Civil Engineering", "HVAC Certification", "Welding Certification",
		},
	},
	{
		ID:   "trades",
		Name: "Skilled Trades",
		Exams: []string{
			"Electrical License", "Plumbing License", "Carpentry License", "HVAC Technician",
			"Welding Certification", "Cosmetology License", "Barber License",
		},
	},
	{
		ID:   "business",
		Name: "Business & Finance",
		Exams: []string{
			"CPA Exam", "CFA Exam", "Real Estate License", "Insurance License",
			"Series 7 Exam", "PMP",
		},
	},
	{
		ID:   "education",
		Name: "Education & Social Work",
		Exams: []string{
			"Teaching Certification", "School Administrator", "LCSW",
			"Counseling Certification", "Psychology License",
		},
	},
}

var usStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut",
	"Delaware", "Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa",
	"Kansas", "Kentucky", "Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan",
	"Minnesota", "Mississippi", "Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire",
	"New Jersey", "New Mexico", "New York", "North Carolina", "North Dakota", "Ohio",
	"Oklahoma", "Oregon", "Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington", "West Virginia",
	"Wisconsin", "Wyoming",
}
