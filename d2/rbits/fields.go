package rbits

// FieldReader keeps the first error of a run of reads so that fixed layouts
// can be written as straight-line code. Once an error happened every later
// read returns a zero value; callers check Err before trusting any value.
type FieldReader struct {
	*Reader
	err error
}

func NewFieldReader(reader *Reader) *FieldReader {
	return &FieldReader{
		Reader: reader,
	}
}

func (r *FieldReader) Uint(width int) int {
	if r.err != nil {
		return 0
	}
	value, err := r.Read(width)
	if err != nil {
		r.err = err
		return 0
	}
	return int(value)
}

func (r *FieldReader) Uint32(width int) uint32 {
	return uint32(r.Uint(width))
}

func (r *FieldReader) Bool() bool {
	return r.Uint(1) != 0
}

func (r *FieldReader) Skip(width int) {
	r.Uint(width)
}

func (r *FieldReader) String(charWidth int) string {
	if r.err != nil {
		return ""
	}
	bs, err := r.ReadTerminatedString(charWidth)
	if err != nil {
		r.err = err
		return ""
	}
	return string(bs)
}

// Fail records err unless an earlier error is already recorded.
func (r *FieldReader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *FieldReader) Err() error {
	return r.err
}
