package model

// Fixed selection vocabularies for the multi-valued fields. The
// presentation layer renders these as pickers; the lists match the
// laboratory's standing sections and species codes.

// LabSections is the fixed lab section vocabulary.
var LabSections = []string{
	"Avian",
	"Bacteriology",
	"Canine Genetics",
	"Contracted Tests",
	"Histology",
	"IHC - Obsolete DON'T USE",
	"Molecular Diagnostics",
	"Other Services",
	"Parasitology",
	"Pathology",
	"Proficiency Tests",
	"Serology",
	"SIPAC Avian",
	"SIPAC Bacteriology",
	"SIPAC Parasitology",
	"SIPAC Virology",
	"Special Stains-Obsolete",
	"Toxicology",
	"TSE",
	"Virology",
}

// SpeciesList is the fixed species vocabulary.
var SpeciesList = []string{
	"Cervid",
	"Avian",
	"Bovine",
	"Canine",
	"Equine",
	"Feline",
	"Caprine",
	"Lab An.",
	"Camelid",
	"Non An.",
	"Ovine",
	"Porcine",
	"Aquatic",
	"Unspecified",
	"Unknown",
	"Miscellaneous",
}

// MailingRoomSubcategories is the subcategory vocabulary for the
// Mailing Room category.
var MailingRoomSubcategories = []string{
	"Missing Sample",
	"Missing Submission Form",
	"Broken Sample",
	"Broken Box",
	"Inappropriate Specimen",
	"No/Incorrect Test Marked",
	"No/Incorrect Species Marked",
	"No History",
	"Blank Submission Form",
	"No/Incorrect Premise ID",
	"Check",
	"No Owner",
	"No Vet",
	"Test Suggestion",
	"Other",
}

// ClientCommSubcategories is the subcategory vocabulary for the
// Client Communication category.
var ClientCommSubcategories = []string{
	"Result Interpretation",
	"Turnaround Time",
	"Sample Submission",
	"Consultation for Testing",
	"Fees",
	"Other",
}

// SubcategoriesFor returns the subcategory vocabulary for a category, or
// nil for categories that have none.
func SubcategoriesFor(c Category) []string {
	switch c {
	case CategoryMailingRoom:
		return MailingRoomSubcategories
	case CategoryClientComm:
		return ClientCommSubcategories
	default:
		return nil
	}
}
