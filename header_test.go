package ofxtree_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofxtree"
)

var _ = Describe("ofxtree", func() {
	Describe("SplitHeader()", func() {
		Context("when given an SGML header", func() {
			It("should parse the colon separated lines", func() {
				h, body, err := ofxtree.SplitHeader("OFXHEADER:100\nDATA:OFXSGML\n\n<OFX><A>1</A></OFX>")
				Expect(err).To(BeNil())
				Expect(body).To(Equal("<OFX><A>1</A></OFX>"))
				Expect(h.Keys()).To(Equal([]string{"OFXHEADER", "DATA"}))
				v, ok := h.Get("OFXHEADER")
				Expect(ok).To(BeTrue())
				Expect(v).To(Equal("100"))
			})
			It("should accept CRLF line endings", func() {
				h, _, err := ofxtree.SplitHeader("OFXHEADER:100\r\nVERSION:102\r\n\r\n<OFX></OFX>")
				Expect(err).To(BeNil())
				v, _ := h.Get("VERSION")
				Expect(v).To(Equal("102"))
			})
			It("should map a line without a colon to an absent value", func() {
				h, _, err := ofxtree.SplitHeader("OFXHEADER:100\nBROKEN\n\n<OFX></OFX>")
				Expect(err).To(BeNil())
				Expect(h.Has("BROKEN")).To(BeTrue())
				_, ok := h.Get("BROKEN")
				Expect(ok).To(BeFalse())
			})
			It("should split at the first colon only", func() {
				h, _, err := ofxtree.SplitHeader("NEWFILEUID:a:b\n<OFX></OFX>")
				Expect(err).To(BeNil())
				v, _ := h.Get("NEWFILEUID")
				Expect(v).To(Equal("a:b"))
			})
			It("should keep everything after the first root tag as body", func() {
				_, body, err := ofxtree.SplitHeader("A:1\n<OFX><OFX></OFX></OFX>")
				Expect(err).To(BeNil())
				Expect(body).To(Equal("<OFX><OFX></OFX></OFX>"))
			})
		})
		Context("when given an XML header", func() {
			It("should read the OFX processing instruction attributes", func() {
				raw := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
					"<?OFX OFXHEADER=\"200\" VERSION=\"211\" SECURITY=\"NONE\" OLDFILEUID=\"NONE\" NEWFILEUID=\"NONE\"?>\n" +
					"<OFX></OFX>"
				h, _, err := ofxtree.SplitHeader(raw)
				Expect(err).To(BeNil())
				Expect(h.Keys()).To(Equal([]string{"OFXHEADER", "VERSION", "SECURITY", "OLDFILEUID", "NEWFILEUID"}))
				v, _ := h.Get("OFXHEADER")
				Expect(v).To(Equal("200"))
			})
		})
		Context("when the root tag is missing", func() {
			It("should return an error", func() {
				_, _, err := ofxtree.SplitHeader("OFXHEADER:100\n<BANKMSGSRSV1></BANKMSGSRSV1>")
				Expect(err).To(MatchError(ofxtree.ErrRootNotFound))
			})
		})
	})
	Describe("NewHeader()", func() {
		It("should return an SGML header with a unique file uid", func() {
			h1, h2 := ofxtree.NewHeader(), ofxtree.NewHeader()
			Expect(h1.Keys()).To(Equal(ofxtree.HeaderKeys))
			v, _ := h1.Get("DATA")
			Expect(v).To(Equal("OFXSGML"))
			u1, _ := h1.Get("NEWFILEUID")
			u2, _ := h2.Get("NEWFILEUID")
			Expect(u1).To(MatchRegexp(`^[0-9A-F]{32}$`))
			Expect(u1).NotTo(Equal(u2))
		})
	})
	Describe("Header", func() {
		Describe("Set()", func() {
			It("should replace a value in place", func() {
				var h ofxtree.Header
				h.Set("A", "1")
				h.Set("B", "2")
				h.Set("A", "3")
				Expect(h.Keys()).To(Equal([]string{"A", "B"}))
				v, _ := h.Get("A")
				Expect(v).To(Equal("3"))
			})
		})
		Describe("Merge()", func() {
			It("should add missing keys from the defaults", func() {
				var h, defaults ofxtree.Header
				h.Set("VERSION", "103")
				defaults.Set("OFXHEADER", "100")
				defaults.Set("VERSION", "102")
				merged := h.Merge(defaults)
				Expect(merged.Keys()).To(Equal([]string{"VERSION", "OFXHEADER"}))
				v, _ := merged.Get("VERSION")
				Expect(v).To(Equal("103"))
				Expect(h.Len()).To(Equal(1))
			})
		})
	})
})
