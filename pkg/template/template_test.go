package template

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
)

func render(t *testing.T, src string, vars Vars) string {
	t.Helper()
	out, err := Render("test.tpl", []byte(src), vars)
	require.NoError(t, err)
	return out
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain text passes through", "hello\n  world\n", "hello\n  world\n"},
		{"empty template", "", ""},
		{"percent outside tags", "100% %> done", "100% %> done"},
		{"literal open tag", "a <%% b", "a <% b"},
		{"comment produces nothing", "a<%# anything at all %>b", "ab"},
		{"empty statement", "a<% %>b", "ab"},
		{"unicode text", "héllo ✓", "héllo ✓"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.src, nil))
		})
	}
}

func TestRenderOutput(t *testing.T) {
	vars := Vars{
		"packageName": String("com.example.app"),
		"appName":     String("MyApp"),
		"useFirebase": Bool(true),
		"flavors":     Strings([]string{"staging", "production"}),
		"count":       Number(3),
		"markup":      String(`<a href="x">Tom & Jerry's</a>`),
	}

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"identifier", "package <%= packageName %>", "package com.example.app"},
		{"no spaces", "<%=appName%>", "MyApp"},
		{"escaped output", "<%= markup %>", "&lt;a href=&#34;x&#34;&gt;Tom &amp; Jerry&#39;s&lt;/a&gt;"},
		{"raw output", "<%- markup %>", `<a href="x">Tom & Jerry's</a>`},
		{"bool", "<%= useFirebase %>", "true"},
		{"number", "<%= count %>", "3"},
		{"list", "<%= flavors %>", "staging,production"},
		{"concat", `<%= appName + "Theme" %>`, "MyAppTheme"},
		{"number add", "<%= count + 1 %>", "4"},
		{"string number concat", `<%= "v" + count %>`, "v3"},
		{"charAt and slice", "<%= appName.charAt(0).toUpperCase() + appName.slice(1) %>", "MyApp"},
		{"capitalize", "<%= capitalize(flavors[0]) %>", "Staging"},
		{"lower", "<%= appName.toLowerCase() %>", "myapp"},
		{"index", "<%= appName[2] %>", "A"},
		{"index out of range", "<%= appName[20] %>", ""},
		{"length", "<%= flavors.length %>", "2"},
		{"join", `<%= flavors.join(" | ") %>`, "staging | production"},
		{"includes list", `<%= flavors.includes("staging") %>`, "true"},
		{"includes string", `<%= packageName.includes("example") %>`, "true"},
		{"startsWith", `<%= packageName.startsWith("com.") %>`, "true"},
		{"endsWith", `<%= packageName.endsWith(".lib") %>`, "false"},
		{"negative slice", "<%= packageName.slice(-3) %>", "app"},
		{"trim", `<%= "  x  ".trim() %>`, "x"},
		{"or default", "<%= (missingList || []).length %>", "0"},
		{"strict equality", `<%= flavors[1] === 'production' %>`, "true"},
		{"not", "<%= !useFirebase %>", "false"},
		{"and yields operand", `<%= useFirebase && "yes" %>`, "yes"},
		{"list literal", `<%= ["a", "b"].join("-") %>`, "a-b"},
		{"escapes in string", `<%= "a\tb" %>`, "a\tb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Vars{"missingList": List()}
			for k, val := range vars {
				v[k] = val
			}
			assert.Equal(t, tt.want, render(t, tt.src, v))
		})
	}
}

func TestRenderConditionals(t *testing.T) {
	src := "<% if (useFirebase) { %>import firebase<% } %>\nimport app\n"

	t.Run("true keeps the block", func(t *testing.T) {
		got := render(t, src, Vars{"useFirebase": Bool(true)})
		assert.Equal(t, "import firebase\nimport app\n", got)
	})

	t.Run("false elides the block and keeps the newline", func(t *testing.T) {
		got := render(t, src, Vars{"useFirebase": Bool(false)})
		assert.Equal(t, "\nimport app\n", got)
	})

	chain := `<% if (flavor === "production") { %>prod<% } else if (flavor === "staging") { %>stage<% } else { %>other<% } %>`
	for flavor, want := range map[string]string{"production": "prod", "staging": "stage", "dev": "other"} {
		t.Run("chain "+flavor, func(t *testing.T) {
			assert.Equal(t, want, render(t, chain, Vars{"flavor": String(flavor)}))
		})
	}

	t.Run("if without else and false condition", func(t *testing.T) {
		assert.Equal(t, "ab", render(t, "a<% if (x) { %>X<% } %>b", Vars{"x": String("")}))
	})

	t.Run("nested", func(t *testing.T) {
		src := "<% if (a) { %>A<% if (b) { %>B<% } %><% } %>"
		assert.Equal(t, "AB", render(t, src, Vars{"a": Bool(true), "b": Bool(true)}))
		assert.Equal(t, "A", render(t, src, Vars{"a": Bool(true), "b": Bool(false)}))
		assert.Equal(t, "", render(t, src, Vars{"a": Bool(false), "b": Bool(true)}))
	})
}

func TestRenderForEach(t *testing.T) {
	vars := Vars{"flavors": Strings([]string{"staging", "production", "qa"})}

	forms := map[string]string{
		"function": `<% flavors.forEach(function(flavor) { %>[<%= flavor %>]<% }) %>`,
		"arrow":    `<% flavors.forEach((flavor) => { %>[<%= flavor %>]<% }); %>`,
		"bare":     `<% flavors.forEach(flavor => { %>[<%= flavor %>]<% }) %>`,
	}
	for name, src := range forms {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "[staging][production][qa]", render(t, src, vars))
		})
	}

	t.Run("empty list renders nothing", func(t *testing.T) {
		src := `a<% items.forEach(function(i) { %>x<% }) %>b`
		assert.Equal(t, "ab", render(t, src, Vars{"items": List()}))
	})

	t.Run("nested loops", func(t *testing.T) {
		src := `<% (fs || []).forEach(function(f) { %><% (vs || []).forEach(function(v) { %><%= f %><%= capitalize(v) %>;<% }) %><% }) %>`
		got := render(t, src, Vars{
			"fs": Strings([]string{"prod", "demo"}),
			"vs": Strings([]string{"debug", "release"}),
		})
		assert.Equal(t, "prodDebug;prodRelease;demoDebug;demoRelease;", got)
	})

	t.Run("loop variable shadows and is scoped", func(t *testing.T) {
		src := `<% items.forEach(function(name) { %><%= name %>,<% }) %><%= name %>`
		got := render(t, src, Vars{"items": Strings([]string{"a", "b"}), "name": String("outer")})
		assert.Equal(t, "a,b,outer", got)
	})

	t.Run("condition inside loop", func(t *testing.T) {
		src := "<% flavors.forEach(function(flavor) { -%>\n" +
			"create(\"<%= flavor %>\")\n" +
			"<% if (flavor !== 'production') { -%>\n" +
			"  suffix = \".<%= flavor %>\"\n" +
			"<% } -%>\n" +
			"<% }) -%>\n"
		got := render(t, src, Vars{"flavors": Strings([]string{"staging", "production"})})
		assert.Equal(t, "create(\"staging\")\n  suffix = \".staging\"\ncreate(\"production\")\n", got)
	})
}

func TestTrimNewline(t *testing.T) {
	t.Run("dash close swallows one newline", func(t *testing.T) {
		assert.Equal(t, "a\nb", render(t, "a\n<% if (x) { -%>\nb<% } %>", Vars{"x": Bool(true)}))
	})
	t.Run("crlf", func(t *testing.T) {
		assert.Equal(t, "ab\r\n", render(t, "a<%# note -%>\r\nb\r\n", nil))
	})
	t.Run("plain close keeps newline", func(t *testing.T) {
		assert.Equal(t, "a\n\nb", render(t, "a\n<% if (x) { %>\nb<% } %>", Vars{"x": Bool(true)}))
	})
	t.Run("output tag", func(t *testing.T) {
		assert.Equal(t, "MyAppnext", render(t, "<%= name -%>\nnext", Vars{"name": String("MyApp")}))
	})
}

func assertCode(t *testing.T, err error, code derrors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, derrors.GetErrorCode(err), "error: %v", err)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		col  int
	}{
		{"unterminated tag", "line one\n  <%= appName", 2, 3},
		{"unclosed if", "<% if (x) { %>body", 1, 1},
		{"unclosed forEach", "a\n<% xs.forEach(function(x) { %>", 2, 1},
		{"stray close", "text<% } %>", 1, 5},
		{"stray else", "<% } else { %>", 1, 1},
		{"if closed as loop", "<% if (x) { %>a<% }) %>", 1, 16},
		{"loop closed as if", "<% xs.forEach(x => { %>a<% } %>", 1, 25},
		{"unknown method", "<%= name.replace('a', 'b') %>", 1, 10},
		{"unknown property", "<%= name.size %>", 1, 10},
		{"unknown function", "<%= upper(name) %>", 1, 5},
		{"wrong arity", "<%= name.charAt() %>", 1, 10},
		{"arbitrary statement", "<% run(x) %>", 1, 4},
		{"assignment", "<% x = 1 %>", 1, 6},
		{"empty output", "<%= %>", 1, 5},
		{"trailing tokens", "<%= a b %>", 1, 7},
		{"unterminated string", `<%= "abc %>`, 1, 5},
		{"template literal", "<%= `x` %>", 1, 5},
		{"whitespace slurp tag", "<%_ x %>", 1, 1},
		{"keyword loop variable", "<% xs.forEach(function(if) { %><% }) %>", 1, 24},
		{"else after else", "<% if (a) { %><% } else { %><% } else { %><% } %>", 1, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("app/build.gradle.kts", []byte(tt.src))
			assertCode(t, err, derrors.ErrTemplateSyntax)

			details := derrors.GetErrorDetails(err)
			assert.Equal(t, "app/build.gradle.kts", details["file"])
			assert.Equal(t, tt.line, details["line"], "line: %v", err)
			assert.Equal(t, tt.col, details["col"], "col: %v", err)
		})
	}
}

func TestUndefinedVariable(t *testing.T) {
	t.Run("reported with position", func(t *testing.T) {
		_, err := Render("MainActivity.kt", []byte("package <%= packageName %>\n<%= appName %>"), Vars{"packageName": String("a.b")})
		assertCode(t, err, derrors.ErrUndefinedVariable)
		details := derrors.GetErrorDetails(err)
		assert.Equal(t, "appName", details["variable"])
		assert.Equal(t, 2, details["line"])
		assert.Equal(t, 5, details["col"])
		assert.Contains(t, err.Error(), "MainActivity.kt:2:5")
	})

	t.Run("reported inside a branch that does not run", func(t *testing.T) {
		_, err := Render("t", []byte("<% if (false) { %><%= ghost %><% } %>"), Vars{})
		assertCode(t, err, derrors.ErrUndefinedVariable)
	})

	t.Run("nothing written on failure", func(t *testing.T) {
		tpl, err := Parse("t", []byte("written <%= ghost %>"))
		require.NoError(t, err)
		var buf bytes.Buffer
		err = tpl.Execute(&buf, Vars{})
		assertCode(t, err, derrors.ErrUndefinedVariable)
		assert.Empty(t, buf.String())
	})

	t.Run("extra variables ignored", func(t *testing.T) {
		assert.Equal(t, "x", render(t, "<%= a %>", Vars{"a": String("x"), "unused": Bool(true)}))
	})
}

func TestEvaluationErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		vars Vars
	}{
		{"forEach over string", "<% s.forEach(function(x) { %><% }) %>", Vars{"s": String("abc")}},
		{"method on bool", "<%= b.toUpperCase() %>", Vars{"b": Bool(true)}},
		{"join on string", "<%= s.join(',') %>", Vars{"s": String("abc")}},
		{"capitalize a list", "<%= capitalize(l) %>", Vars{"l": List()}},
		{"add list", "<%= l + 'x' %>", Vars{"l": List()}},
		{"add bools", "<%= b + b %>", Vars{"b": Bool(true)}},
		{"list index out of range", "<%= l[3] %>", Vars{"l": Strings([]string{"a"})}},
		{"fractional index", "<%= s[0.5] %>", Vars{"s": String("abc")}},
		{"length of bool", "<%= b.length %>", Vars{"b": Bool(false)}},
		{"negate string", "<%= -s %>", Vars{"s": String("abc")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render("t", []byte(tt.src), tt.vars)
			assertCode(t, err, derrors.ErrTemplateEvaluation)
			assert.Contains(t, err.Error(), "t:1:")
		})
	}
}

func TestVariables(t *testing.T) {
	src := `<% if (useFirebase) { %>x<% } %>
<%= packageName %>
<% flavors.forEach(function(flavor) { %><%= flavor + suffix %><% }) %>
<%= capitalize(appName) %><%= flavor %>`
	tpl, err := Parse("t", []byte(src))
	require.NoError(t, err)

	// flavor is free outside the loop
	assert.Equal(t, []string{"appName", "flavor", "flavors", "packageName", "suffix", "useFirebase"}, tpl.Variables())

	tpl, err = Parse("t", []byte(`<% xs.forEach(x => { %><%= x %><% }) %>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"xs"}, tpl.Variables())
}

func TestValue(t *testing.T) {
	assert.False(t, String("").Truthy())
	assert.True(t, String("a").Truthy())
	assert.False(t, Number(0).Truthy())
	assert.True(t, Number(-1).Truthy())
	assert.False(t, List().Truthy())
	assert.True(t, Strings([]string{""}).Truthy())
	assert.Equal(t, "1.5", Number(1.5).String())
	assert.True(t, Strings([]string{"a"}).Equal(List(String("a"))))
	assert.False(t, String("1").Equal(Number(1)))
	assert.Equal(t, "list", List().Kind().String())
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"staging", "Staging"},
		{"Prod", "Prod"},
		{"1st", "1st"},
		{"élan", "Élan"},
		{"\xffbeta", "\xffbeta"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, capitalize(tt.in), "capitalize(%q)", tt.in)
	}

	out := render(t, "<%= capitalize(f) %>", Vars{"f": String("\xe9x")})
	assert.Equal(t, "\xe9x", out)
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;&#34;&#39;plain", EscapeXML(`&<>"'plain`))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestExecuteWriteFailure(t *testing.T) {
	tpl, err := Parse("t", []byte("text"))
	require.NoError(t, err)
	err = tpl.Execute(failingWriter{}, nil)
	assertCode(t, err, derrors.ErrIO)
}
