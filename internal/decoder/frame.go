package decoder

import (
	"github.com/thesyncim/goals/internal/bitio"
	"github.com/thesyncim/goals/internal/block"
	"github.com/thesyncim/goals/internal/mcc"
	"github.com/thesyncim/goals/internal/partition"
)

// blockLengths reads the block switching flags of a frame of n samples
// and returns the flags with the block lengths.
func (d *Decoder) blockLengths(r *bitio.Reader, n int) (uint32, []int) {
	cfg := d.cfg
	flags := partition.ReadFlags(r, cfg.FlagBytes())
	return flags, partition.Decode(flags, cfg.FrameLength, n, cfg.Levels)
}

// read parses the next block of ch, nb samples long.
func (d *Decoder) read(r *bitio.Reader, ch *channel, nb int, ra bool) error {
	if err := ch.coder.Read(r, &ch.blk, nb, ra); err != nil {
		return err
	}
	r.Align()
	return nil
}

// reconstruct writes the samples of the parsed block of ch at offset off
// of the frame.
func (d *Decoder) reconstruct(ch *channel, off int) error {
	buf := ch.hist.Buffer(d.span)
	return ch.coder.Reconstruct(&ch.blk, buf, ch.hist.Len()+off)
}

// decodePlain decodes a frame without multi-channel correlation.
func (d *Decoder) decodePlain(r *bitio.Reader, n int, ra bool) error {
	cfg := d.cfg
	nch := len(d.chans)
	for c := 0; c < nch; {
		flags, lengths := d.blockLengths(r, n)
		if cfg.Joint && c%2 == 0 && c+1 < nch && flags&partition.Independent == 0 {
			if err := d.decodePair(r, c, lengths, ra); err != nil {
				return err
			}
			c += 2
			continue
		}

		ch := d.chans[c]
		off := 0
		for _, nb := range lengths {
			if err := d.read(r, ch, nb, ra && off == 0); err != nil {
				return err
			}
			if err := d.reconstruct(ch, off); err != nil {
				return err
			}
			off += nb
		}
		c++
	}
	return nil
}

// decodePair decodes the blocks of coupled channels c and c+1. Each block
// pair is two of the left channel, the right channel and their difference.
func (d *Decoder) decodePair(r *bitio.Reader, c int, lengths []int, ra bool) error {
	a, b, s := d.chans[c], d.chans[c+1], d.diffs[c/2]
	off := 0
	for _, nb := range lengths {
		bra := ra && off == 0
		x0 := a.hist.Frame(off + nb)[off:]
		x1 := b.hist.Frame(off + nb)[off:]
		xs := s.hist.Frame(off + nb)[off:]

		if block.PeekJoint(r) {
			if err := d.step(r, s, nb, off, bra); err != nil {
				return err
			}
			if err := d.step(r, b, nb, off, bra); err != nil {
				return err
			}
			for i := range x0 {
				x0[i] = x1[i] - xs[i]
			}
		} else {
			if err := d.step(r, a, nb, off, bra); err != nil {
				return err
			}
			if block.PeekJoint(r) {
				if err := d.step(r, s, nb, off, bra); err != nil {
					return err
				}
				for i := range x1 {
					x1[i] = x0[i] + xs[i]
				}
			} else {
				if err := d.step(r, b, nb, off, bra); err != nil {
					return err
				}
				for i := range xs {
					xs[i] = x1[i] - x0[i]
				}
			}
		}
		off += nb
	}
	return nil
}

// step reads and reconstructs one block of ch.
func (d *Decoder) step(r *bitio.Reader, ch *channel, nb, off int, ra bool) error {
	if err := d.read(r, ch, nb, ra); err != nil {
		return err
	}
	return d.reconstruct(ch, off)
}

// decodeMCC decodes a frame coded with multi-channel correlation.
func (d *Decoder) decodeMCC(r *bitio.Reader, n int, ra bool) error {
	cfg := d.cfg
	_, lengths := d.blockLengths(r, n)
	refBits, lagBits := cfg.ChannelBits(), cfg.LagBits()
	nch := len(d.chans)

	off := 0
	for _, nb := range lengths {
		bra := ra && off == 0
		for c, ch := range d.chans {
			if err := ch.coder.Read(r, &ch.blk, nb, bra); err != nil {
				return err
			}
			sides, err := mcc.Read(r, ch.sides, c, nch, refBits, lagBits)
			if err != nil {
				return err
			}
			ch.sides = sides
			r.Align()

			d.sides[c] = sides
			d.coded[c] = ch.blk.Kind == block.Normal
			d.res[c] = nil
			if d.coded[c] {
				d.res[c] = ch.blk.Residual[:nb]
			}
		}
		if err := mcc.RevertAll(d.res, d.sides, d.coded); err != nil {
			return err
		}
		for _, ch := range d.chans {
			if err := d.reconstruct(ch, off); err != nil {
				return err
			}
		}
		off += nb
	}
	return nil
}
