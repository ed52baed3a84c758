package core

// Student is a library member.
// BooksOut counts active borrows, BooksReturned counts all returns ever made.
type Student struct {
	ID            StudentIDString
	Name          string
	Email         string
	ClassLabel    string
	BooksOut      int
	BooksReturned int
}

// BuildStudent creates a Student without any lending history.
func BuildStudent(id StudentIDString, name string, email string, classLabel string) Student {
	return Student{
		ID:         id,
		Name:       name,
		Email:      email,
		ClassLabel: classLabel,
	}
}

// Validate checks the static fields of a student.
func (s Student) Validate() error {
	if _, err := ParseStudentID(s.ID); err != nil {
		return err
	}

	if s.BooksOut < 0 || s.BooksReturned < 0 {
		return ErrInvalidStudent
	}

	return nil
}

// Batch returns the batch code embedded in the student's id.
func (s Student) Batch() string {
	batch, _ := BatchOf(s.ID)
	return batch
}
