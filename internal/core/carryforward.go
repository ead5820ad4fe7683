package core

import "strconv"

// CreateMonthFromPrevious derives a new month's contribution list from a
// previous month's: every member carries forward as an unpaid obligation,
// except those present in the blacklist. The returned record always has a
// non-nil contribution slice.
func CreateMonthFromPrevious(prev *MonthRecord, blacklist BlacklistData) *MonthRecord {
	rec := NewMonthRecord()
	if prev == nil {
		return rec
	}
	for _, c := range prev.Contributions {
		if blacklist.Contains(c.MemberName) {
			continue
		}
		rec.Contributions = append(rec.Contributions, Contribution{
			MemberName: c.MemberName,
			Amount:     c.Amount,
			Paid:       false,
		})
		rec.Total += c.Amount
	}
	return rec
}

// FindPreviousMonthData walks backwards chronologically from (year, month)
// and returns the nearest earlier month that has a non-empty contribution
// list, or nil when none exists. The walk crosses year boundaries and stops
// once it falls below the earliest year present in the dataset.
func FindPreviousMonthData(data ContributionsData, year, month string) *MonthRecord {
	idx, ok := MonthIndex(month)
	if !ok {
		return nil
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return nil
	}
	years := data.Years()
	if len(years) == 0 {
		return nil
	}
	earliest, err := strconv.Atoi(years[0])
	if err != nil {
		return nil
	}

	for {
		idx--
		if idx < 0 {
			y--
			idx = len(Months) - 1
		}
		if y < earliest {
			return nil
		}
		rec := data.MonthRecordAt(strconv.Itoa(y), Months[idx])
		if rec != nil && len(rec.Contributions) > 0 {
			return rec
		}
	}
}

// AddNewMembersToExistingMonth merges members from prev that are absent
// from the target month and not blacklisted, carried as unpaid. Existing
// entries are untouched. Returns the number of members added.
func AddNewMembersToExistingMonth(target, prev *MonthRecord, blacklist BlacklistData) int {
	if target == nil || prev == nil {
		return 0
	}
	added := 0
	for _, c := range prev.Contributions {
		if blacklist.Contains(c.MemberName) || target.HasMember(c.MemberName) {
			continue
		}
		target.Contributions = append(target.Contributions, Contribution{
			MemberName: c.MemberName,
			Amount:     c.Amount,
			Paid:       false,
		})
		target.Total += c.Amount
		added++
	}
	return added
}

// CloneMonth duplicates a record with every paid flag forced false.
// Contributions carry forward as obligations, not settled payments. The
// cached Total is copied as-is; flipping paid state does not change the sum.
func CloneMonth(src *MonthRecord) *MonthRecord {
	rec := NewMonthRecord()
	if src == nil {
		return rec
	}
	for _, c := range src.Contributions {
		c.Paid = false
		rec.Contributions = append(rec.Contributions, c)
	}
	rec.Total = src.Total
	return rec
}
