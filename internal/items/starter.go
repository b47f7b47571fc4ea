package items

// StarterSet seeds a new installation.
var StarterSet = []string{
	"# Write From Dictation starter set. One sentence per line.",
	"The library will be closed during the holiday period.",
	"Students are required to submit their assignments before the deadline.",
	"The lecture has been moved to the main auditorium.",
	"Climate change is one of the greatest challenges of our time.",
	"All laboratory equipment must be returned after each session.",
	"The research findings were published in an international journal.",
	"Please make sure you read the instructions carefully.",
	"Tutorials provide an opportunity to discuss the reading material.",
	"The university offers a wide range of scholarships for international students.",
	"Economic growth depends on investment in education and infrastructure.",
	"Attendance at the orientation session is strongly recommended.",
	"The survey results will be analysed over the next two weeks.",
}
