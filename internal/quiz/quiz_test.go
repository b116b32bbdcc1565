package quiz

import "testing"

// testBank builds a bank where every correct option is index 0.
func testBank(n int) []Question {
	bank := make([]Question, n)
	for i := range bank {
		bank[i] = Question{
			Prompt:       "q",
			Options:      []string{"right", "wrong", "wrong", "wrong"},
			CorrectIndex: 0,
		}
	}
	return bank
}

func TestEngine_ScoreCountsMatches(t *testing.T) {
	// k matching answers out of 10 must score exactly k.
	for k := 0; k <= 10; k++ {
		e := NewEngine(testBank(10))
		for i := 0; i < 10; i++ {
			option := 1
			if i < k {
				option = 0
			}
			if !e.Record(i, option) {
				t.Fatalf("Record(%d, %d) rejected", i, option)
			}
		}
		if got := e.Submit(); got != k {
			t.Errorf("k=%d: Submit() = %d", k, got)
		}
	}
}

func TestEngine_SubmitIdempotent(t *testing.T) {
	e := NewEngine(testBank(10))
	for i := 0; i < 10; i++ {
		e.Record(i, 0)
	}
	first := e.Submit()
	// Recording after submission must be ignored, and a second Submit
	// must return the same score.
	if e.Record(0, 1) {
		t.Error("Record after submission succeeded")
	}
	if second := e.Submit(); second != first {
		t.Errorf("second Submit() = %d, first = %d", second, first)
	}
}

func TestEngine_RecordOverwrites(t *testing.T) {
	e := NewEngine(testBank(10))
	e.Record(3, 2)
	e.Record(3, 0)
	if got := e.Answer(3); got != 0 {
		t.Errorf("Answer(3) = %d, want 0 after overwrite", got)
	}
}

func TestEngine_RecordRejectsOutOfRange(t *testing.T) {
	e := NewEngine(testBank(10))
	if e.Record(-1, 0) || e.Record(10, 0) {
		t.Error("Record accepted an out-of-range question index")
	}
	if e.Record(0, -1) || e.Record(0, 4) {
		t.Error("Record accepted an out-of-range option")
	}
}

func TestEngine_Complete(t *testing.T) {
	e := NewEngine(testBank(10))
	if e.Complete() {
		t.Error("Complete() = true with no answers")
	}
	for i := 0; i < 9; i++ {
		e.Record(i, 1)
	}
	if e.Complete() {
		t.Error("Complete() = true with one unanswered question")
	}
	e.Record(9, 1)
	if !e.Complete() {
		t.Error("Complete() = false with all answered")
	}
}

func TestEngine_EmptyBankCannotComplete(t *testing.T) {
	e := NewEngine(nil)
	if e.Complete() {
		t.Error("empty bank reports Complete()")
	}
}

func TestEngine_PassThresholds(t *testing.T) {
	e := NewEngine(testBank(10))
	for i := 0; i < 10; i++ {
		option := 1
		if i < 7 {
			option = 0
		}
		e.Record(i, option)
	}
	e.Submit()
	if !e.Passed(7) {
		t.Error("score 7 should pass threshold 7")
	}
	if e.Passed(8) {
		t.Error("score 7 should fail threshold 8")
	}
}

func TestEngine_PassedFalseBeforeSubmit(t *testing.T) {
	e := NewEngine(testBank(10))
	if e.Passed(0) {
		t.Error("Passed before submission")
	}
}

func TestEngine_Retake(t *testing.T) {
	e := NewEngine(testBank(10))
	for i := 0; i < 10; i++ {
		e.Record(i, 0)
	}
	e.Submit()
	e.Retake()

	if e.Submitted() || e.Score() != 0 {
		t.Error("Retake did not reset submission state")
	}
	for i := 0; i < 10; i++ {
		if e.Answer(i) != Unanswered {
			t.Fatalf("Answer(%d) = %d after Retake, want Unanswered", i, e.Answer(i))
		}
	}
	if e.Len() != 10 {
		t.Error("Retake disturbed the bank")
	}
	if !e.Record(0, 0) {
		t.Error("Record rejected after Retake")
	}
}
