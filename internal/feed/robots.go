// Copyright (c) 2026 Kahani. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feed

import "strings"

type robotsRule struct {
	userAgent string
	allow     []string
	disallow  []string
}

var robotsRules = []robotsRule{
	{
		userAgent: "*",
		allow:     []string{"/", "/play/", "/library", "/most-played", "/most-favorited"},
		disallow:  []string{"/api/", "/api-test", "/private/"},
	},
	{userAgent: "Googlebot", allow: []string{"/"}, disallow: []string{"/api/", "/api-test"}},
	{userAgent: "Bingbot", allow: []string{"/"}, disallow: []string{"/api/", "/api-test"}},
}

// BuildRobots renders robots.txt with the sitemap location and host.
func BuildRobots(site Site) string {
	var builder strings.Builder

	for _, rule := range robotsRules {
		builder.WriteString("User-Agent: " + rule.userAgent + "\n")
		for _, path := range rule.allow {
			builder.WriteString("Allow: " + path + "\n")
		}
		for _, path := range rule.disallow {
			builder.WriteString("Disallow: " + path + "\n")
		}
		builder.WriteString("\n")
	}

	builder.WriteString("Host: " + site.URL + "\n")
	builder.WriteString("Sitemap: " + site.URL + "/sitemap.xml\n")

	return builder.String()
}
