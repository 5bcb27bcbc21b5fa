package views

// Slide is one panel of the home page carousel
type Slide struct {
	Title   string
	Caption string
	Color   string // Bootstrap background suffix
}

var HomeSlides = []Slide{
	{Title: "Book appointments online", Caption: "Find a doctor by department and pick a time that suits you.", Color: "primary"},
	{Title: "Your treatments in one place", Caption: "Diagnoses and prescriptions from every visit, exportable as CSV.", Color: "success"},
	{Title: "Home services", Caption: "Cleaning, plumbing, electrical and more from verified professionals.", Color: "info"},
}

// ServiceTypes are the marketplace categories offered as filters
var ServiceTypes = []string{"cleaning", "plumbing", "electrical", "painting", "haircut"}
