package router

import (
	"testing"

	"github.com/misy-ai/gateway/internal/model"
)

func TestClassify(t *testing.T) {
	r := New(nil, nil, nil, nil)

	cases := []struct {
		input string
		want  model.Category
	}{
		{"Здравей!", model.CategoryGreeting},
		{"hello", model.CategoryGreeting},
		{"Искам да пътувам до Италия", model.CategoryTravel},
		{"трябва ми хотел за уикенда", model.CategoryTravel},
		{"Как да вдигна продажбите?", model.CategoryBusiness},
		{"нов продукт за клиенти", model.CategoryBusiness},
		{"не знам какво да правя", model.CategoryPersonal},
		{"", model.CategoryPersonal},
	}
	for _, c := range cases {
		if got := r.Classify(c.input); got != c.want {
			t.Errorf("Classify(%q) = %s, want %s", c.input, got, c.want)
		}
	}
}

// Greeting wins over co-occurring travel and business keywords.
func TestClassifyPrecedence(t *testing.T) {
	r := New(nil, nil, nil, nil)

	if got := r.Classify("Здравей, искам да пътувам"); got != model.CategoryGreeting {
		t.Errorf("greeting+travel = %s, want greeting", got)
	}
	if got := r.Classify("hello, let's talk sales"); got != model.CategoryGreeting {
		t.Errorf("greeting+business = %s, want greeting", got)
	}
	if got := r.Classify("хотел за бизнес пътуване"); got != model.CategoryTravel {
		t.Errorf("travel+business = %s, want travel", got)
	}
}

func TestIsClarityMoment(t *testing.T) {
	r := New(nil, nil, nil, nil)

	cases := []struct {
		input string
		want  bool
	}{
		{"направи ми план за седмицата", true},
		{"искам план за пътуването", true},
		{"give me a travel blueprint", true},
		{"дай ми стратегия", true},
		{"просто искам да поговорим", false},
		{"здравей", false},
	}
	for _, c := range cases {
		if got := r.IsClarityMoment(c.input); got != c.want {
			t.Errorf("IsClarityMoment(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// Clarity detection is independent of classification: the same input can be
// a travel-classified clarity moment.
func TestClarityIndependentOfCategory(t *testing.T) {
	r := New(nil, nil, nil, nil)
	input := "направи ми маршрут за Рим"

	if got := r.Classify(input); got != model.CategoryTravel {
		t.Fatalf("Classify = %s, want travel", got)
	}
	if !r.IsClarityMoment(input) {
		t.Error("expected clarity moment")
	}
}
