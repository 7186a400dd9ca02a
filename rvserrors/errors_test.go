package rvserrors

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("boom")
	err := New(Config, "config.Load", cause, WithFrame(3), WithVirtual("v0"))

	kind, ok := KindOf(err)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, kind, test.ShouldEqual, Config)
	test.That(t, errors.Unwrap(err), test.ShouldEqual, cause)
	test.That(t, err.Error(), test.ShouldContainSubstring, "frame=3")
	test.That(t, err.Error(), test.ShouldContainSubstring, "virtual=v0")
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("plain"))
	test.That(t, ok, test.ShouldBeFalse)
}

func TestIsMatchesByKind(t *testing.T) {
	a := New(Geometry, "camera.New", nil)
	b := New(Geometry, "other.Op", nil)
	c := New(IO, "io.Read", nil)
	test.That(t, errors.Is(a, b), test.ShouldBeTrue)
	test.That(t, errors.Is(a, c), test.ShouldBeFalse)
}
