package names

import "testing"

func TestCasing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, pascal, camel, snake string
	}{
		{"user_dto", "UserDto", "userDto", "user_dto"},
		{"PostDto", "PostDto", "postDto", "post_dto"},
		{"accountTypeID", "AccountTypeId", "accountTypeId", "account_type_id"},
		{"HTMLParser", "HtmlParser", "htmlParser", "html_parser"},
		{"some-test", "SomeTest", "someTest", "some_test"},
		{"", "", "", ""},
	}
	for _, tc := range cases {
		if got := PascalCase(tc.in); got != tc.pascal {
			t.Fatalf("PascalCase(%q) = %q, want %q", tc.in, got, tc.pascal)
		}
		if got := CamelCase(tc.in); got != tc.camel {
			t.Fatalf("CamelCase(%q) = %q, want %q", tc.in, got, tc.camel)
		}
		if got := SnakeCase(tc.in); got != tc.snake {
			t.Fatalf("SnakeCase(%q) = %q, want %q", tc.in, got, tc.snake)
		}
	}
}

func TestModelName(t *testing.T) {
	t.Parallel()

	cases := map[string][2]string{
		"Test":          {"Test", "test.ts"},
		"users":         {"User", "user.ts"},
		"account_types": {"AccountType", "account_type.ts"},
		"PostModel":     {"Post", "post.ts"},
		"user.ts":       {"User", "user.ts"},
	}
	for in, want := range cases {
		if got := ModelName(in); got != want[0] {
			t.Fatalf("ModelName(%q) = %q, want %q", in, got, want[0])
		}
		if got := ModelFileName(in); got != want[1] {
			t.Fatalf("ModelFileName(%q) = %q, want %q", in, got, want[1])
		}
	}
}

func TestCreateEntity(t *testing.T) {
	t.Parallel()

	e := CreateEntity("admin/reports/user_dto.ts")
	if e.Path != "admin/reports" || e.Name != "user_dto" {
		t.Fatalf("unexpected entity %+v", e)
	}
	e = CreateEntity("user")
	if e.Path != "" || e.Name != "user" {
		t.Fatalf("unexpected entity %+v", e)
	}
}
