package querydsl_test

import (
	"errors"
	"fmt"

	"github.com/guenzelsen/querydsl"
	"github.com/guenzelsen/querydsl/opensearch"
)

func ExampleBuild() {
	query, err := querydsl.Build(func(q *querydsl.QueryBuilder) {
		q.Bool(func(b *querydsl.BoolQueryBuilder) {
			b.Must(func(l *querydsl.QueryListBuilder) {
				l.Match("title", "search engines")
				l.Match("content", "query dsl")
			})
			b.Filter(func(l *querydsl.QueryListBuilder) {
				l.Term("status", "published")
			})
		})
	})
	if err != nil {
		panic(err)
	}

	result, err := querydsl.Render(query, opensearch.New())
	if err != nil {
		panic(err)
	}
	fmt.Println(result.JSON)

	// Output:
	// {"bool":{"filter":{"term":{"status":"published"}},"must":[{"match":{"title":{"query":"search engines"}}},{"match":{"content":{"query":"query dsl"}}}]}}
}

func ExampleBuild_multipleQueries() {
	_, err := querydsl.Build(func(q *querydsl.QueryBuilder) {
		q.Match("title", "kotlin")
		q.Term("status", "published")
	})
	fmt.Println(errors.Is(err, querydsl.ErrMultipleQueries))

	// Output:
	// true
}

func ExampleNestedQueryBuilder_Query() {
	query := querydsl.MustBuild(func(q *querydsl.QueryBuilder) {
		q.Nested("comments", func(n *querydsl.NestedQueryBuilder) {
			n.ScoreMode(querydsl.ScoreAvg)
			n.Query(func(q *querydsl.QueryBuilder) {
				q.Match("comments.text", "great")
			})
		})
	})

	result, err := querydsl.Render(query, opensearch.New())
	if err != nil {
		panic(err)
	}
	fmt.Println(result.JSON)

	// Output:
	// {"nested":{"path":"comments","query":{"match":{"comments.text":{"query":"great"}}},"score_mode":"avg"}}
}
