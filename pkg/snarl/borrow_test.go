package snarl

import (
	"errors"
	"testing"
)

func TestBorrowShared(t *testing.T) {
	s := New[string]()
	a := s.AddNode("a", Pos{})

	p1, release1, err := s.BorrowPayload(a)
	if err != nil {
		t.Fatalf("BorrowPayload: %v", err)
	}
	p2, release2, err := s.BorrowPayload(a)
	if err != nil {
		t.Fatalf("second shared borrow: %v", err)
	}
	if *p1 != "a" || *p2 != "a" {
		t.Errorf("borrowed values = %q, %q, want %q", *p1, *p2, "a")
	}

	// Exclusive access is blocked while readers are active.
	if _, _, err := s.BorrowPayloadMut(a); !errors.Is(err, ErrBorrowConflict) {
		t.Errorf("BorrowPayloadMut during shared borrow: err = %v, want ErrBorrowConflict", err)
	}

	release1()
	release2()
	if _, release, err := s.BorrowPayloadMut(a); err != nil {
		t.Errorf("BorrowPayloadMut after release: %v", err)
	} else {
		release()
	}
}

func TestBorrowMutExcludesAll(t *testing.T) {
	s := New[string]()
	a := s.AddNode("a", Pos{})
	b := s.AddNode("b", Pos{})

	p, release, err := s.BorrowPayloadMut(a)
	if err != nil {
		t.Fatalf("BorrowPayloadMut: %v", err)
	}
	*p = "mutated"

	if _, _, err := s.BorrowPayload(a); !errors.Is(err, ErrBorrowConflict) {
		t.Errorf("shared borrow during exclusive: err = %v, want ErrBorrowConflict", err)
	}
	if _, _, err := s.BorrowPayloadMut(a); !errors.Is(err, ErrBorrowConflict) {
		t.Errorf("second exclusive borrow: err = %v, want ErrBorrowConflict", err)
	}

	// Borrows on a different node never conflict.
	if _, releaseB, err := s.BorrowPayloadMut(b); err != nil {
		t.Errorf("borrow of other node: %v", err)
	} else {
		releaseB()
	}

	release()
	release() // double release is a no-op

	payload, _ := s.Payload(a)
	if payload != "mutated" {
		t.Errorf("payload = %q, want %q", payload, "mutated")
	}
	if _, release, err := s.BorrowPayload(a); err != nil {
		t.Errorf("borrow after release: %v", err)
	} else {
		release()
	}
}

func TestBorrowSurvivesGrowth(t *testing.T) {
	s := New[string]()
	a := s.AddNode("a", Pos{})

	p, release, err := s.BorrowPayloadMut(a)
	if err != nil {
		t.Fatalf("BorrowPayloadMut: %v", err)
	}

	// Force the slot storage to reallocate while the borrow is active.
	for i := 0; i < 64; i++ {
		s.AddNode("filler", Pos{})
	}

	*p = "mutated"
	release()

	payload, _ := s.Payload(a)
	if payload != "mutated" {
		t.Errorf("payload = %q, want %q", payload, "mutated")
	}
	if _, release, err := s.BorrowPayloadMut(a); err != nil {
		t.Errorf("BorrowPayloadMut after growth and release: %v", err)
	} else {
		release()
	}
}

func TestRemoveNodeWhileBorrowed(t *testing.T) {
	s := New[string]()
	a := s.AddNode("a", Pos{})

	_, release, err := s.BorrowPayload(a)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.RemoveNode(a); !errors.Is(err, ErrBorrowConflict) {
		t.Errorf("RemoveNode during borrow: err = %v, want ErrBorrowConflict", err)
	}
	if err := s.SetPayload(a, "x"); !errors.Is(err, ErrBorrowConflict) {
		t.Errorf("SetPayload during borrow: err = %v, want ErrBorrowConflict", err)
	}
	if !s.Contains(a) {
		t.Error("node must survive a rejected removal")
	}

	release()
	if _, err := s.RemoveNode(a); err != nil {
		t.Errorf("RemoveNode after release: %v", err)
	}
}

func TestBorrowUnknownNode(t *testing.T) {
	s := New[string]()
	if _, _, err := s.BorrowPayload(7); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("err = %v, want ErrUnknownNode", err)
	}
	if _, _, err := s.BorrowPayloadMut(7); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("err = %v, want ErrUnknownNode", err)
	}
}
