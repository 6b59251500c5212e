// Package i18n holds the user-facing notices in Thai and English.
package i18n

import (
	"golang.org/x/text/language"
)

type Key string

const (
	LoadFailed      Key = "load_failed"
	CourseAdded     Key = "course_added"
	AddCourseFailed Key = "add_course_failed"
	ReviewSubmitted Key = "review_submitted"
	SubmitFailed    Key = "submit_failed"
	ReviewRejected  Key = "review_rejected"
	VoteThanks      Key = "vote_thanks"
	VoteFailed      Key = "vote_failed"
	ReportReceived  Key = "report_received"
	ReportFailed    Key = "report_failed"
	NoRating        Key = "no_rating"
	CourseNotFound  Key = "course_not_found"
	ReviewNotFound  Key = "review_not_found"
	InvalidRating   Key = "invalid_rating"
	EmptyReview     Key = "empty_review"
	EmptyCourse     Key = "empty_course"
	TooManyVotes    Key = "too_many_votes"
)

var supported = []language.Tag{language.Thai, language.English}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[Key]string{
	language.Thai: {
		LoadFailed:      "เกิดข้อผิดพลาดในการโหลดข้อมูล",
		CourseAdded:     "เพิ่มวิชาใหม่เรียบร้อยแล้ว!",
		AddCourseFailed: "เกิดข้อผิดพลาดในการเพิ่มวิชาใหม่",
		ReviewSubmitted: "ส่งรีวิวเรียบร้อยแล้ว!",
		SubmitFailed:    "เกิดข้อผิดพลาดในการส่งรีวิว",
		ReviewRejected:  "รีวิวของคุณมีเนื้อหาที่ไม่เหมาะสม กรุณาแก้ไขก่อนโพสต์",
		VoteThanks:      "ขอบคุณสำหรับโหวต!",
		VoteFailed:      "เกิดข้อผิดพลาดในการโหวต",
		ReportReceived:  "รับทราบการรายงานแล้ว! หากรีวิวนี้ถูกรายงานครบ 5 ครั้ง จะถูกซ่อนอัตโนมัติ",
		ReportFailed:    "เกิดข้อผิดพลาดในการรายงาน",
		NoRating:        "ยังไม่มี",
		CourseNotFound:  "ไม่พบวิชานี้",
		ReviewNotFound:  "ไม่พบรีวิวนี้",
		InvalidRating:   "กรุณาให้คะแนนระหว่าง 1 ถึง 5",
		EmptyReview:     "กรุณาเขียนรีวิวก่อนส่ง",
		EmptyCourse:     "กรุณากรอกชื่อวิชาและรหัสวิชา",
		TooManyVotes:    "คุณได้ดำเนินการกับรีวิวนี้แล้ว",
	},
	language.English: {
		LoadFailed:      "Failed to load data.",
		CourseAdded:     "Course added!",
		AddCourseFailed: "Failed to add the course.",
		ReviewSubmitted: "Review submitted!",
		SubmitFailed:    "Failed to submit the review.",
		ReviewRejected:  "Your review contains inappropriate content. Please edit it before posting.",
		VoteThanks:      "Thanks for voting!",
		VoteFailed:      "Failed to record your vote.",
		ReportReceived:  "Report received! A review reported 5 times is hidden automatically.",
		ReportFailed:    "Failed to report the review.",
		NoRating:        "Not yet",
		CourseNotFound:  "Course not found.",
		ReviewNotFound:  "Review not found.",
		InvalidRating:   "Please rate between 1 and 5.",
		EmptyReview:     "Please write a review before submitting.",
		EmptyCourse:     "Course name and code are required.",
		TooManyVotes:    "You have already done this for this review.",
	},
}

// Match picks Thai or English from an Accept-Language header. Thai wins when
// nothing matches.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.Thai
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return language.Thai
	}
	return supported[idx]
}

func Message(tag language.Tag, key Key) string {
	if m, ok := messages[tag][key]; ok {
		return m
	}
	if m, ok := messages[language.Thai][key]; ok {
		return m
	}
	return string(key)
}
