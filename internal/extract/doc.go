// Package extract turns a rendered sportsbook page into markets.
//
// Markup convention (one market group holds many market articles):
//
//	<div class="market-group">
//	  <article class="market market-id-123 market-part-1">
//	    <legend>1X2</legend>
//	    <div class="outcome">
//	      <span class="outcome-label">Hazai</span>
//	      <span class="outcome-odds">1.85</span>
//	    </div>
//	  </article>
//	</div>
//
// Extraction degrades element by element: a missing class token becomes a
// nil field, an incomplete outcome is skipped, and a market left without
// outcomes is dropped. Nothing in the markup makes Parse fail.
package extract
