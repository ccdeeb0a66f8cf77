package ofxtree_test

import (
	"errors"
	"io/ioutil"
	"strings"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofxtree"
	"github.com/rockstardevs/ofxtree/mock_ofxtree"
)

type FakeReader struct {
	err error
}

func (f FakeReader) Read(p []byte) (int, error) {
	return 0, f.err
}

func fixture(name string) string {
	data, err := ioutil.ReadFile("testdata/" + name)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func leafAt(d *ofxtree.Document, path string) ofxtree.Leaf {
	n, ok := d.Lookup(path)
	Expect(ok).To(BeTrue(), path)
	leaf, ok := n.(ofxtree.Leaf)
	Expect(ok).To(BeTrue(), path)
	return leaf
}

var _ = Describe("ofxtree", func() {
	Describe("Parse()", func() {
		Context("when given an SGML document parsable as is", func() {
			It("should keep unpaired leaf text", func() {
				d, err := ofxtree.Parse("OFXHEADER:100\nDATA:OFXSGML\n\n<OFX><BANKMSGSRSV1><NAME>ACME Bank\n</BANKMSGSRSV1></OFX>")
				Expect(err).To(BeNil())
				Expect(leafAt(d, "OFX.BANKMSGSRSV1.NAME")).To(Equal(ofxtree.Leaf("ACME Bank")))
				v, ok := d.Header.Get("OFXHEADER")
				Expect(ok).To(BeTrue())
				Expect(v).To(Equal("100"))
				Expect(d.Normalized).To(BeFalse())
				Expect(d.Dialect()).To(Equal(ofxtree.DialectSGML))
			})
		})
		Context("when given an SGML document that needs normalizing", func() {
			var d *ofxtree.Document
			BeforeEach(func() {
				var err error
				d, err = ofxtree.Parse(fixture("statement_sgml.ofx"))
				Expect(err).To(BeNil())
			})
			It("should parse after normalization", func() {
				Expect(d.Normalized).To(BeTrue())
				Expect(d.Header.Len()).To(Equal(9))
			})
			DescribeTable("should recover leaf values", func(path, expected string) {
				Expect(leafAt(d, path)).To(Equal(ofxtree.Leaf(expected)))
			},
				Entry("status code", "OFX.SIGNONMSGSRSV1.SONRS.STATUS.CODE", "0"),
				Entry("language", "OFX.SIGNONMSGSRSV1.SONRS.LANGUAGE", "ENG"),
				Entry("closed leaf", "OFX.SIGNONMSGSRSV1.SONRS.FI.ORG", "Test Bank"),
				Entry("dotted tag", "OFX.SIGNONMSGSRSV1.SONRS.INTUBID", "00012"),
				Entry("account type", "OFX.BANKMSGSRSV1.STMTTRNRS.STMTRS.BANKACCTFROM.ACCTTYPE", "CREDITLINE"),
				Entry("first txn amount", "OFX.BANKMSGSRSV1.STMTTRNRS.STMTRS.BANKTRANLIST.STMTTRN.0.TRNAMT", "-20.96"),
				Entry("ampersand memo", "OFX.BANKMSGSRSV1.STMTTRNRS.STMTRS.BANKTRANLIST.STMTTRN.0.MEMO", "Smith & Sons"),
				Entry("second txn name", "OFX.BANKMSGSRSV1.STMTTRNRS.STMTRS.BANKTRANLIST.STMTTRN.1.NAME", "Another Expense"),
				Entry("balance date", "OFX.BANKMSGSRSV1.STMTTRNRS.STMTRS.AVAILBAL.DTASOF", "20190131120000.000[-7:MST]"),
			)
			It("should collapse repeated transactions into a list", func() {
				n, ok := d.Lookup("OFX.BANKMSGSRSV1.STMTTRNRS.STMTRS.BANKTRANLIST.STMTTRN")
				Expect(ok).To(BeTrue())
				Expect(n.Kind()).To(Equal(ofxtree.ListKind))
				Expect(n.(ofxtree.List)).To(HaveLen(2))
			})
		})
		Context("when given an XML document", func() {
			It("should parse without normalization", func() {
				d, err := ofxtree.Parse(fixture("statement_xml.ofx"))
				Expect(err).To(BeNil())
				Expect(d.Normalized).To(BeFalse())
				Expect(d.Dialect()).To(Equal(ofxtree.DialectXML))
				Expect(leafAt(d, "OFX.SIGNONMSGSRSV1.SONRS.DTSERVER")).To(Equal(ofxtree.Leaf("20200101120000.000[-5:EST]")))
				Expect(leafAt(d, "OFX.BANKMSGSRSV1.STMTTRNRS.STMTRS.BANKTRANLIST.STMTTRN.MEMO")).
					To(Equal(ofxtree.Leaf("Refund & adjustment")))
			})
		})
		Context("when given a document with crossed nesting", func() {
			It("should fail after both attempts", func() {
				d, err := ofxtree.Parse("OFXHEADER:100\n\n<OFX><A><B></A></B></OFX>")
				Expect(d).To(BeNil())
				Expect(err).To(MatchError("error - normalized parse failed: error - unexpected closing tag </B>"))
				var perr *ofxtree.ParseError
				Expect(errors.As(err, &perr)).To(BeTrue())
				Expect(perr.Stage).To(Equal(ofxtree.StageNormalized))
				Expect(perr.Previous).NotTo(BeNil())
				Expect(perr.Previous.Stage).To(Equal(ofxtree.StageWellFormed))
			})
		})
		Context("when given a document without an OFX tag", func() {
			It("should return an error", func() {
				d, err := ofxtree.Parse("OFXHEADER:100\n\n<BANKMSGSRSV1></BANKMSGSRSV1>")
				Expect(d).To(BeNil())
				Expect(err).To(MatchError(ofxtree.ErrRootNotFound))
			})
		})
	})
	Describe("ParseReader()", func() {
		It("should return reader errors", func() {
			d, err := ofxtree.ParseReader(&FakeReader{err: errors.New("fake reader test error")})
			Expect(err).To(MatchError("fake reader test error"))
			Expect(d).To(BeNil())
		})
		It("should parse the read document", func() {
			d, err := ofxtree.ParseReader(strings.NewReader("A:1\n<OFX><B>2</B></OFX>"))
			Expect(err).To(BeNil())
			Expect(leafAt(d, "OFX.B")).To(Equal(ofxtree.Leaf("2")))
		})
	})
	Describe("Decoder", func() {
		var (
			ctrl       *gomock.Controller
			normalizer *mock_ofxtree.MockNormalizer
			decoder    *ofxtree.Decoder
		)
		BeforeEach(func() {
			ctrl = gomock.NewController(GinkgoT())
			normalizer = mock_ofxtree.NewMockNormalizer(ctrl)
			decoder = ofxtree.NewDecoder(normalizer)
		})
		AfterEach(func() {
			ctrl.Finish()
		})
		It("should not normalize a well-formed body", func() {
			normalizer.EXPECT().Normalize(gomock.Any()).Times(0)
			d, err := decoder.Decode("A:1\n<OFX><B>2</B></OFX>")
			Expect(err).To(BeNil())
			Expect(d.Normalized).To(BeFalse())
		})
		It("should normalize the body after a failed attempt", func() {
			body := "<OFX><INTU.BID>7\n</OFX>"
			normalizer.EXPECT().Normalize(body).Return("<OFX><INTUBID>7</INTUBID></OFX>")
			d, err := decoder.Decode("A:1\n" + body)
			Expect(err).To(BeNil())
			Expect(d.Normalized).To(BeTrue())
			Expect(leafAt(d, "OFX.INTUBID")).To(Equal(ofxtree.Leaf("7")))
		})
		It("should return the normalized attempt error", func() {
			normalizer.EXPECT().Normalize(gomock.Any()).Return("<OFX>")
			d, err := decoder.Decode("A:1\n<OFX><B></OFX></B>")
			Expect(d).To(BeNil())
			Expect(err).To(MatchError("error - normalized parse failed: error - element <OFX> is not closed"))
		})
	})
	Describe("Document", func() {
		Describe("Body()", func() {
			It("should return the root element content", func() {
				d, err := ofxtree.Parse("A:1\n<OFX><B>2</B></OFX>")
				Expect(err).To(BeNil())
				body, ok := d.Body()
				Expect(ok).To(BeTrue())
				Expect(body).To(Equal(obj("B", ofxtree.Leaf("2"))))
			})
		})
		Describe("Dialect()", func() {
			DescribeTable("should read the dialect from the header", func(raw string, expected ofxtree.Dialect) {
				d, err := ofxtree.Parse(raw)
				Expect(err).To(BeNil())
				Expect(d.Dialect()).To(Equal(expected))
			},
				Entry("DATA", "DATA:OFXSGML\n<OFX></OFX>", ofxtree.DialectSGML),
				Entry("OFXHEADER 100", "OFXHEADER:100\n<OFX></OFX>", ofxtree.DialectSGML),
				Entry("OFXHEADER 200", `<?OFX OFXHEADER="200"?><OFX></OFX>`, ofxtree.DialectXML),
				Entry("missing", "\n<OFX></OFX>", ofxtree.DialectUnknown),
			)
		})
	})
})
