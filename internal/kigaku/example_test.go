package kigaku_test

import (
	"fmt"
	"time"

	"github.com/zapponejosh/kigaku-api/internal/kigaku"
)

func ExampleCompute() {
	jst := time.FixedZone("Asia/Tokyo", 9*60*60)
	r := kigaku.Compute(time.Date(1990, 5, 15, 12, 0, 0, 0, jst))

	fmt.Println(r.KigakuYear, r.AstrologicalMonth)
	fmt.Println(r.HonmeiName, r.GetsumeiName, r.NichimeiName)
	// Output:
	// 1990 4
	// 一白水星 三碧木星 七赤金星
}

func ExampleResult_WithLanguage() {
	jst := time.FixedZone("Asia/Tokyo", 9*60*60)
	r := kigaku.Compute(time.Date(2024, 2, 10, 9, 0, 0, 0, jst))

	fmt.Println(r.Honmei, r.Getsumei, r.Nichimei)
	fmt.Println(r.WithLanguage("en").HonmeiName)
	// Output:
	// 1 3 4
	// One White Water
}

func ExampleNormalize() {
	fmt.Println(kigaku.Normalize(0), kigaku.Normalize(10), kigaku.Normalize(-1))
	// Output: 9 1 8
}
