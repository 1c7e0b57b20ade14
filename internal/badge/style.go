package badge

// Badge card styling cycles through a fixed palette by derivation index so
// recomputation always assigns the same colors to the same badge.

var gradients = []string{
	"linear-gradient(135deg, #f857a6 0%, #ff5858 100%)",
	"linear-gradient(135deg, #5ee7df 0%, #b490ca 100%)",
	"linear-gradient(135deg, #fbc2eb 0%, #a6c1ee 100%)",
	"linear-gradient(135deg, #ff9a9e 0%, #fad0c4 99%, #fad0c4 100%)",
	"linear-gradient(135deg, #f6d365 0%, #fda085 100%)",
	"linear-gradient(135deg, #84fab0 0%, #8fd3f4 100%)",
	"linear-gradient(135deg, #cfd9df 0%, #e2ebf0 100%)",
	"linear-gradient(135deg, #ffecd2 0%, #fcb69f 100%)",
}

var accents = []string{
	"#f857a6",
	"#5ee7df",
	"#a6c1ee",
	"#ff9a9e",
	"#f6d365",
	"#84fab0",
	"#cfd9df",
	"#fcb69f",
}

func Gradient(index int) string {
	return gradients[index%len(gradients)]
}

func Accent(index int) string {
	return accents[index%len(accents)]
}
