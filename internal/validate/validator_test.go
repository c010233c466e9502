package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLit(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator
		tokens    []string
		want      any
		wantLeft  []string
	}{
		{
			name:      "case insensitive match",
			validator: Lit("default"),
			tokens:    []string{"DEFAULT", "-200"},
			want:      "DEFAULT",
			wantLeft:  []string{"-200"},
		},
		{
			name:      "multiple literals",
			validator: Lit("expense", "expenses"),
			tokens:    []string{"expenses"},
			want:      "expenses",
			wantLeft:  []string{},
		},
		{
			name:      "no match yields nil",
			validator: Lit("default"),
			tokens:    []string{"-200"},
			want:      nil,
			wantLeft:  []string{"-200"},
		},
		{
			name:      "default value on no match",
			validator: Lit("income").Default("any"),
			tokens:    []string{"rent"},
			want:      "any",
			wantLeft:  []string{"rent"},
		},
		{
			name:      "strict is case sensitive",
			validator: LitStrict("default"),
			tokens:    []string{"DEFAULT"},
			want:      nil,
			wantLeft:  []string{"DEFAULT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := NewArgs(tt.tokens)
			got, err := tt.validator.Apply(args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantLeft, args.Tokens())
		})
	}
}

func TestRequired(t *testing.T) {
	t.Run("missing required input", func(t *testing.T) {
		args := NewArgs([]string{"groceries"})
		_, err := Lit("default").Required().Apply(args)
		require.ErrorIs(t, err, ErrMissingRequired)
		// Failure must not consume anything.
		assert.Equal(t, []string{"groceries"}, args.Tokens())
	})

	t.Run("required beats default", func(t *testing.T) {
		args := NewArgs(nil)
		_, err := Any().Required().Default("x").Apply(args)
		require.ErrorIs(t, err, ErrMissingRequired)
	})
}

func TestPlural(t *testing.T) {
	t.Run("claims every matching token", func(t *testing.T) {
		isUpper := func(s string) bool { return s == "A" || s == "B" }
		args := NewArgs([]string{"A", "x", "B", "y"})
		got, err := Pred(isUpper).Plural().Apply(args)
		require.NoError(t, err)
		assert.Equal(t, []any{"A", "B"}, got)
		assert.Equal(t, []string{"x", "y"}, args.Tokens())
	})

	t.Run("any plural drains the list", func(t *testing.T) {
		args := NewArgs([]string{"a", "b", "c"})
		got, err := Any().Plural().Apply(args)
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b", "c"}, got)
		assert.True(t, args.Empty())
	})

	t.Run("singular stops at first match", func(t *testing.T) {
		args := NewArgs([]string{"a", "b"})
		got, err := Any().Apply(args)
		require.NoError(t, err)
		assert.Equal(t, "a", got)
		assert.Equal(t, []string{"b"}, args.Tokens())
	})
}

func TestInvert(t *testing.T) {
	t.Run("flips polarity and yields the raw token", func(t *testing.T) {
		args := NewArgs([]string{"income", "savings"})
		got, err := Lit("income").Invert().Apply(args)
		require.NoError(t, err)
		assert.Equal(t, "savings", got)
		assert.Equal(t, []string{"income"}, args.Tokens())
	})

	t.Run("all tokens match literal", func(t *testing.T) {
		args := NewArgs([]string{"income"})
		got, err := Lit("income").Invert().Apply(args)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestNew(t *testing.T) {
	t.Run("match func controls the value", func(t *testing.T) {
		double := New(func(token string) (any, bool) {
			if token == "2" {
				return 4, true
			}
			return nil, false
		})
		args := NewArgs([]string{"1", "2", "3"})
		got, err := double.Apply(args)
		require.NoError(t, err)
		assert.Equal(t, 4, got)
		assert.Equal(t, []string{"1", "3"}, args.Tokens())
	})
}

func TestPeek(t *testing.T) {
	t.Run("reports a match without consuming", func(t *testing.T) {
		args := NewArgs([]string{"insurance", "default", "-200"})
		assert.True(t, Lit("default").Peek(args))
		assert.Equal(t, 3, args.Len())
	})

	t.Run("no match", func(t *testing.T) {
		args := NewArgs([]string{"insurance", "-200"})
		assert.False(t, Lit("default").Peek(args))
	})

	t.Run("any does not match empty args", func(t *testing.T) {
		assert.False(t, Any().Peek(NewArgs(nil)))
	})
}

func TestArgs(t *testing.T) {
	t.Run("pop front", func(t *testing.T) {
		args := NewArgs([]string{"list", "all"})
		tok, ok := args.PopFront()
		require.True(t, ok)
		assert.Equal(t, "list", tok)
		assert.Equal(t, []string{"all"}, args.Tokens())
	})

	t.Run("pop front empty", func(t *testing.T) {
		args := NewArgs(nil)
		_, ok := args.PopFront()
		assert.False(t, ok)
	})

	t.Run("consumption preserves order of the rest", func(t *testing.T) {
		args := NewArgs([]string{"2022", "march", "income", "food"})
		year, err := Pred(func(s string) bool { return len(s) == 4 && s[0] == '2' }).Apply(args)
		require.NoError(t, err)
		assert.Equal(t, "2022", year)
		assert.Equal(t, []string{"march", "income", "food"}, args.Tokens())
	})
}
