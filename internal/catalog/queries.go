package catalog

// Query is a fixed, parameterized statement exposed as a named lookup.
type Query struct {
	Name    string
	Arity   int
	Usage   string
	Summary string
	SQL     string
}

// queries are listed in menu order.
var queries = []Query{
	{
		Name:    "d",
		Usage:   "d",
		Summary: "demo",
		SQL:     `SELECT first_name, last_name FROM Student`,
	},
	{
		Name:    "vs",
		Arity:   1,
		Usage:   "vs <student_id>",
		Summary: "view subjects taken by a student",
		SQL: `SELECT Course.course_name
		FROM Course
		JOIN StudentCourse ON StudentCourse.course_code = Course.course_code
		JOIN Student ON StudentCourse.student_id = Student.student_id
		WHERE Student.student_id = ?`,
	},
	{
		Name:    "la",
		Arity:   2,
		Usage:   "la <firstname> <surname>",
		Summary: "lookup address for a given firstname and surname",
		SQL: `SELECT Address.street, Address.city
		FROM Address
		JOIN Student ON Address.address_id = Student.address_id
		WHERE Student.first_name = ? AND Student.last_name = ?`,
	},
	{
		Name:    "lr",
		Arity:   1,
		Usage:   "lr <student_id>",
		Summary: "list reviews for a given student_id",
		SQL: `SELECT Review.completeness, Review.efficiency, Review.style, Review.documentation, Review.review_text
		FROM Review
		JOIN StudentCourse ON Review.student_id = StudentCourse.student_id
			AND Review.course_code = StudentCourse.course_code
		JOIN Student ON StudentCourse.student_id = Student.student_id
		WHERE Student.student_id = ?`,
	},
	{
		Name:    "lc",
		Arity:   1,
		Usage:   "lc <teacher_id>",
		Summary: "list all courses taken by teacher_id",
		SQL: `SELECT Course.course_name
		FROM Course
		JOIN Teacher ON Course.teacher_id = Teacher.teacher_id
		WHERE Course.teacher_id = ?`,
	},
	{
		Name:    "lnc",
		Usage:   "lnc",
		Summary: "list all students who haven't completed their course",
		SQL: `SELECT Student.student_id, Student.first_name, Student.last_name, Student.email, Course.course_name
		FROM Course
		JOIN StudentCourse ON StudentCourse.course_code = Course.course_code
		JOIN Student ON StudentCourse.student_id = Student.student_id
		WHERE StudentCourse.is_complete = 0`,
	},
	{
		Name:    "lf",
		Usage:   "lf",
		Summary: "list all students who have completed their course and achieved 30 or below",
		SQL: `SELECT Student.student_id, Student.first_name, Student.last_name, Student.email, Course.course_name, StudentCourse.mark
		FROM Course
		JOIN StudentCourse ON StudentCourse.course_code = Course.course_code
		JOIN Student ON StudentCourse.student_id = Student.student_id
		WHERE StudentCourse.is_complete = 1 AND StudentCourse.mark <= 30`,
	},
}

// Queries returns the catalog in menu order.
func Queries() []Query {
	out := make([]Query, len(queries))
	copy(out, queries)
	return out
}

// Lookup returns the query registered under name.
func Lookup(name string) (Query, bool) {
	for _, q := range queries {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}
