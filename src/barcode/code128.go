package barcode

import (
	"fmt"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/utils"
)

// Bar and space widths of every Code 128 symbol value, bar first. The last
// entry is the stop pattern, which carries a trailing termination bar.
var code128Widths = [...]string{
	"212222", "222122", "222221", "121223", "121322", "131222", "122213", "122312",
	"132212", "221213", "221312", "231212", "112232", "122132", "122231", "113222",
	"123122", "123221", "223211", "221132", "221231", "213212", "223112", "312131",
	"311222", "321122", "321221", "312212", "322112", "322211", "212123", "212321",
	"232121", "111323", "131123", "131321", "112313", "132113", "132311", "211313",
	"231113", "231311", "112133", "112331", "132131", "113123", "113321", "133121",
	"313121", "211331", "231131", "213113", "213311", "213131", "311123", "311321",
	"331121", "312113", "312311", "332111", "314111", "221411", "431111", "111224",
	"111422", "121124", "121421", "141122", "141221", "112214", "112412", "122114",
	"122411", "142112", "142211", "241211", "221114", "413111", "241112", "134111",
	"111242", "121142", "121241", "114212", "124112", "124211", "411212", "421112",
	"421211", "212141", "214121", "412121", "111143", "111341", "131141", "114113",
	"114311", "411113", "411311", "113141", "114131", "311141", "411131", "211412",
	"211214", "211232", "2331112",
}

const (
	code128StartB = 104
	code128Stop   = 106
)

func addCode128Symbol(bits *utils.BitList, value int) {
	bar := true
	for _, w := range code128Widths[value] {
		for i := 0; i < int(w-'0'); i++ {
			bits.AddBit(bar)
		}
		bar = !bar
	}
}

// encodeCode128 encodes printable ASCII in code set B with no length limit.
// The symbol is start B, one value per character, the mod 103 check value
// and the stop pattern.
func encodeCode128(content string) (barcode.Barcode, error) {
	if content == "" {
		return nil, ErrEmptyInput
	}
	bits := new(utils.BitList)
	addCode128Symbol(bits, code128StartB)
	sum := code128StartB
	pos := 1
	for _, r := range content {
		if r < ' ' || r > '~' {
			return nil, fmt.Errorf("character %q at position %d is not printable ASCII", r, pos)
		}
		value := int(r - ' ')
		sum += pos * value
		addCode128Symbol(bits, value)
		pos++
	}
	addCode128Symbol(bits, sum%103)
	addCode128Symbol(bits, code128Stop)
	return utils.New1DCode(barcode.TypeCode128, content, bits), nil
}
