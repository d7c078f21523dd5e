package interactive

type fakeObject struct {
	destructed bool
	name       string
	ip         *State
}

func newFakeObject(name string) *fakeObject {
	ob := &fakeObject{name: name}
	ob.ip = New(ob)
	return ob
}

func (o *fakeObject) Destructed() bool      { return o.destructed }
func (o *fakeObject) Interactive() *State   { return o.ip }
func (o *fakeObject) SetInteractive(s *State) { o.ip = s }
func (o *fakeObject) Name() string          { return o.name }

type fakeCallable struct {
	calls [][]any
	ret   any
	err   error
}

func (c *fakeCallable) Call(args ...any) (any, error) {
	c.calls = append(c.calls, args)
	return c.ret, c.err
}
