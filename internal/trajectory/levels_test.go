package trajectory

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MapTitleToLevel", func() {
	DescribeTable("maps titles to ladder levels",
		func(title string, expected int) {
			Expect(MapTitleToLevel(title)).To(Equal(expected))
		},
		Entry("intern", "Software Engineering Intern", LevelIntern),
		Entry("junior", "Junior Developer", LevelJunior),
		Entry("plain engineer defaults to mid", "Software Engineer", LevelMid),
		Entry("senior", "Senior Software Engineer", LevelSenior),
		Entry("abbreviated senior", "Sr. Software Engineer", LevelSenior),
		Entry("tech lead", "Tech Lead", LevelSenior),
		Entry("staff", "Staff Engineer", LevelStaff),
		Entry("principal", "Principal Engineer", LevelPrincipal),
		Entry("distinguished", "Distinguished Engineer", LevelDistinguished),

		Entry("manager", "Engineering Manager", LevelManager),
		Entry("senior manager", "Senior Engineering Manager", LevelSeniorManager),
		Entry("bare director", "Director", LevelDirector),
		Entry("director of engineering", "Director of Engineering", LevelDirector),
		Entry("head of engineering", "Head of Engineering", LevelDirector),
		Entry("senior director", "Senior Director of Engineering", LevelSeniorDir),
		Entry("vp", "VP of Engineering", LevelVP),
		Entry("vice president spelled out", "Vice President, Engineering", LevelVP),
		Entry("svp", "SVP Engineering", LevelSVP),
		Entry("cto", "CTO", LevelCLevel),
		Entry("chief technology officer", "Chief Technology Officer", LevelCLevel),

		Entry("product manager is off the ladder", "Product Manager", LevelUnknown),
		Entry("director of product is off the ladder", "Director of Product", LevelUnknown),
		Entry("marketing lead is off the ladder", "Marketing Lead", LevelUnknown),
		Entry("unknown title", "Ninja", LevelUnknown),
		Entry("empty title", "", LevelUnknown),
	)

	It("treats abbreviated and spelled-out titles as equivalent", func() {
		Expect(MapTitleToLevel("Sr. Software Engineer")).To(Equal(MapTitleToLevel("Senior Software Engineer")))
		Expect(MapTitleToLevel("Eng Mgr")).To(Equal(MapTitleToLevel("Engineering Manager")))
	})
})

var _ = Describe("ComparableLevel", func() {
	It("leaves IC levels untouched", func() {
		Expect(ComparableLevel(LevelSenior)).To(Equal(LevelSenior))
	})

	It("projects management levels onto the IC scale", func() {
		Expect(ComparableLevel(LevelManager)).To(Equal(LevelSenior))
		Expect(ComparableLevel(LevelDirector)).To(Equal(LevelPrincipal))
	})

	It("passes unknown through", func() {
		Expect(ComparableLevel(LevelUnknown)).To(Equal(LevelUnknown))
	})
})

var _ = Describe("IsManagementLevel", func() {
	It("splits the ladders at the manager boundary", func() {
		Expect(IsManagementLevel(LevelDistinguished)).To(BeFalse())
		Expect(IsManagementLevel(LevelManager)).To(BeTrue())
		Expect(IsManagementLevel(LevelCLevel)).To(BeTrue())
	})
})
