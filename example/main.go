package main

import (
	"fmt"
	"log"

	"github.com/rockstardevs/ofxtree"
)

func main() {
	data := `OFXHEADER:100
DATA:OFXSGML
VERSION:102

<OFX>
<SIGNONMSGSRSV1><SONRS>
	<STATUS><CODE>0<SEVERITY>INFO</STATUS>
	<DTSERVER>20190923042445<LANGUAGE>ENG
	<FI><ORG>Test Bank</ORG><FID>123</FID></FI>
</SONRS></SIGNONMSGSRSV1>
<BANKMSGSRSV1><STMTTRNRS>
	<TRNUID>0
	<STMTRS>
		<CURDEF>USD
		<BANKTRANLIST>
			<STMTTRN><TRNTYPE>DEBIT<DTPOSTED>20190119090000<TRNAMT>-20.96<FITID>20190119090001<NAME>Sample Expense</STMTTRN>
			<STMTTRN><TRNTYPE>DEBIT<DTPOSTED>20191115090000<TRNAMT>-115.26<FITID>20190122090002<NAME>Another Expense</STMTTRN>
		</BANKTRANLIST>
	</STMTRS>
</STMTTRNRS></BANKMSGSRSV1>
</OFX>
`
	document, err := ofxtree.Parse(data)
	if err != nil {
		log.Fatalf("error parsing data file - %s", err)
	}
	txns, _ := document.Lookup("OFX.BANKMSGSRSV1.STMTTRNRS.STMTRS.BANKTRANLIST.STMTTRN")
	for _, txn := range txns.(ofxtree.List) {
		amount, _ := ofxtree.Lookup(txn, "TRNAMT")
		posted, _ := ofxtree.Lookup(txn, "DTPOSTED")
		value, err := amount.(ofxtree.Leaf).Decimal()
		if err != nil {
			log.Fatalf("error parsing amount - %s", err)
		}
		when, err := posted.(ofxtree.Leaf).Time(nil)
		if err != nil {
			log.Fatalf("error parsing date - %s", err)
		}
		fmt.Printf("%s %s\n", when.Format("2006-01-02"), value)
	}
	fmt.Print(ofxtree.SerializeDocument(document))
}
