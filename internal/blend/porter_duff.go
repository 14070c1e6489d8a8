// Package blend implements the compositing operators of paint.BlendMode on
// premultiplied 8-bit RGBA.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "github.com/gogpu/paint"

// Func blends a premultiplied source pixel onto a premultiplied
// destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// For returns the blend function for mode. Unknown modes composite as
// source-over.
func For(mode paint.BlendMode) Func {
	switch mode {
	case paint.BlendClear:
		return blendClear
	case paint.BlendSrc:
		return blendSrc
	case paint.BlendDst:
		return blendDst
	case paint.BlendDstOver:
		return blendDstOver
	case paint.BlendSrcIn:
		return blendSrcIn
	case paint.BlendDstIn:
		return blendDstIn
	case paint.BlendSrcOut:
		return blendSrcOut
	case paint.BlendDstOut:
		return blendDstOut
	case paint.BlendSrcATop:
		return blendSrcATop
	case paint.BlendDstATop:
		return blendDstATop
	case paint.BlendXor:
		return blendXor
	case paint.BlendPlus:
		return blendPlus
	case paint.BlendModulate:
		return blendModulate
	case paint.BlendScreen:
		return blendScreen
	case paint.BlendMultiply:
		return blendMultiply
	default:
		return blendSrcOver
	}
}

func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

func blendSrc(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func blendDst(_, _, _, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

// S + D*(1-Sa)
func blendSrcOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	inv := 255 - sa
	return addClamp(sr, mulDiv255(dr, inv)),
		addClamp(sg, mulDiv255(dg, inv)),
		addClamp(sb, mulDiv255(db, inv)),
		addClamp(sa, mulDiv255(da, inv))
}

// S*(1-Da) + D
func blendDstOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return blendSrcOver(dr, dg, db, da, sr, sg, sb, sa)
}

// S*Da
func blendSrcIn(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

// D*Sa
func blendDstIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

// S*(1-Da)
func blendSrcOut(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	inv := 255 - da
	return mulDiv255(sr, inv), mulDiv255(sg, inv), mulDiv255(sb, inv), mulDiv255(sa, inv)
}

// D*(1-Sa)
func blendDstOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	inv := 255 - sa
	return mulDiv255(dr, inv), mulDiv255(dg, inv), mulDiv255(db, inv), mulDiv255(da, inv)
}

// S*Da + D*(1-Sa), alpha Da
func blendSrcATop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	inv := 255 - sa
	return addClamp(mulDiv255(sr, da), mulDiv255(dr, inv)),
		addClamp(mulDiv255(sg, da), mulDiv255(dg, inv)),
		addClamp(mulDiv255(sb, da), mulDiv255(db, inv)),
		da
}

// S*(1-Da) + D*Sa, alpha Sa
func blendDstATop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return blendSrcATop(dr, dg, db, da, sr, sg, sb, sa)
}

// S*(1-Da) + D*(1-Sa)
func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa, invSa := 255-da, 255-sa
	return addClamp(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		addClamp(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		addClamp(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		addClamp(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}

// min(S + D, 1)
func blendPlus(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

// S*D
func blendModulate(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, dr), mulDiv255(sg, dg), mulDiv255(sb, db), mulDiv255(sa, da)
}

// S + D - S*D
func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	screen := func(s, d byte) byte { return addClamp(s, d-mulDiv255(s, d)) }
	return screen(sr, dr), screen(sg, dg), screen(sb, db), screen(sa, da)
}

// S*(1-Da) + D*(1-Sa) + S*D
func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa, invSa := 255-da, 255-sa
	mul := func(s, d byte) byte {
		return addClamp(addClamp(mulDiv255(s, invDa), mulDiv255(d, invSa)), mulDiv255(s, d))
	}
	return mul(sr, dr), mul(sg, dg), mul(sb, db), addClamp(sa, mulDiv255(da, invSa))
}

// mulDiv255 returns round(a*b/255) using Alvy Ray Smith's exact division.
func mulDiv255(a, b byte) byte {
	t := uint16(a)*uint16(b) + 128
	return byte((t + t>>8) >> 8)
}

func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// lerp255 returns a + (b-a)*t/255.
func lerp255(a, b, t byte) byte {
	if b >= a {
		return a + mulDiv255(b-a, t)
	}
	return a - mulDiv255(a-b, t)
}
